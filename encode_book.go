package partnership

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Command identifies the kind of a record in a book file.
type Command string

const (
	CmdPartner    Command = "partner"
	CmdContribute Command = "contribute"
	CmdDistribute Command = "distribute"
	CmdCashFlow   Command = "cashflow"
)

// DecodeBook decodes the records of a book from a stream of JSONL data.
//
// Each line is a JSON object with a "command" property telling its kind. Records
// are added in file order, so a partner must be declared before its first
// contribution, and realized distributions must appear in date order.
func DecodeBook(r io.Reader) (*Book, error) {
	book := NewBook()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command Command `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", line, string(lineBytes), err)
		}

		var err error
		switch identifier.Command {
		case CmdPartner:
			var p Partner
			if err = json.Unmarshal(lineBytes, &p); err == nil {
				err = book.AddPartner(p)
			}
		case CmdContribute:
			var c CapitalContribution
			if err = json.Unmarshal(lineBytes, &c); err == nil {
				err = book.Contribute(c)
			}
		case CmdDistribute:
			var d Distribution
			if err = json.Unmarshal(lineBytes, &d); err == nil {
				err = book.Record(d)
			}
		case CmdCashFlow:
			var e CashFlowEntry
			if err = json.Unmarshal(lineBytes, &e); err == nil {
				err = book.AddCashFlow(e)
			}
		default:
			err = fmt.Errorf("%w: unknown command %q", ErrInvalidInput, identifier.Command)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return book, nil
}

// EncodeRecord marshals a single record to JSON, prefixed with its command,
// and writes it to the writer followed by a newline.
func EncodeRecord(w io.Writer, cmd Command, v any) error {
	line, err := recordLine(cmd, v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", cmd, err)
	}
	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("failed to write %s record: %w", cmd, err)
	}
	return nil
}

// recordLine returns the JSON object of 'v' with "command" as its first field, newline terminated.
func recordLine(cmd Command, v any) ([]byte, error) {
	fields, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields = bytes.TrimSpace(fields)
	if len(fields) < 2 || fields[0] != '{' || fields[len(fields)-1] != '}' {
		return nil, fmt.Errorf("%w: %s record is not a JSON object", ErrInvalidInput, cmd)
	}
	fields = bytes.TrimSpace(fields[1 : len(fields)-1])

	line := fmt.Appendf(nil, `{"command":%q`, cmd)
	if len(fields) > 0 {
		line = append(line, ',')
		line = append(line, fields...)
	}
	return append(line, '}', '\n'), nil
}

// EncodeBook writes every record of the book in JSONL format: partners first,
// then contributions, distributions and cash flows, each in recorded order.
func EncodeBook(w io.Writer, b *Book) error {
	for _, p := range b.partners {
		if err := EncodeRecord(w, CmdPartner, p); err != nil {
			return err
		}
	}
	for _, c := range b.contributions {
		if err := EncodeRecord(w, CmdContribute, c); err != nil {
			return err
		}
	}
	for _, d := range b.distributions {
		if err := EncodeRecord(w, CmdDistribute, d); err != nil {
			return err
		}
	}
	for _, e := range b.cashFlows {
		if err := EncodeRecord(w, CmdCashFlow, e); err != nil {
			return err
		}
	}
	return nil
}

// LoadBook reads the book file at 'path'. A missing file is an empty book.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.WithField("path", path).Debug("book file not found, starting an empty book")
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", path, err)
	}
	defer f.Close()

	book, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", path, err)
	}
	return book, nil
}

// SaveBook writes the whole book to the file at 'path'.
func SaveBook(path string, b *Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening book file %q for writing: %w", path, err)
	}
	defer f.Close()
	return EncodeBook(f, b)
}

// AppendRecord appends a single record to the book file at 'path', creating it if needed.
func AppendRecord(path string, cmd Command, v any) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening book file %q for appending: %w", path, err)
	}
	defer f.Close()
	return EncodeRecord(f, cmd, v)
}
