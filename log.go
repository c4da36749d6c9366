package partnership

import "github.com/sirupsen/logrus"

// logger receives the engine diagnostics, all at debug level.
var logger = logrus.StandardLogger()

// SetLogger replaces the logger used by the engine.
func SetLogger(l *logrus.Logger) { logger = l }
