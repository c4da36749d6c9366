package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	EnvBookFile   = "WF_BOOK_FILE"
	EnvConfigFile = "WF_CONFIG_FILE"
	EnvCurrency   = "WF_CURRENCY"
	EnvVerbose    = "WF_VERBOSE"
)

// extensionEnv returns the environment of an extension: the current one plus the global settings.
func extensionEnv() []string {
	return append(os.Environ(),
		EnvBookFile+"="+settings.BookFile,
		EnvConfigFile+"="+settings.ConfigFile,
		EnvCurrency+"="+settings.Currency,
		EnvVerbose+"="+strconv.FormatBool(settings.Verbose),
	)
}

// RunExtension attempts to find and execute an external wf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "wf-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logrus.WithField("command", externalCmdName).Debug("no extension found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
