package codegen

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

const failureSeparator = "-------------------------------------------------------------"

// FailureLogPath returns the configured failure log, falling back to the
// FailureLogEnv environment variable.
func FailureLogPath(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(FailureLogEnv)
}

// FormatFailure renders one failure log entry: the document with the failing
// line, the message, the error and the document text between separators.
func FormatFailure(document, text string, err error) string {
	line := ""
	var perr *parser.ParseError
	if errors.As(err, &perr) && perr.Line > 0 {
		line = fmt.Sprintf(":%d", perr.Line)
	}

	var b strings.Builder
	b.WriteString(failureSeparator + "\n")
	b.WriteString(document + line + "\n")
	fmt.Fprintf(&b, "generation failed for %s: %v\n", path.Base(document), err)
	b.WriteString(failureSeparator + "\n")
	fmt.Fprintf(&b, "%+v\n", err)
	b.WriteString(failureSeparator + "\n")
	if text != "" {
		b.WriteString(text + "\n")
	}
	b.WriteString(failureSeparator + "\n")
	return b.String()
}

func (g *Generator) logFailure(document, text string, err error) {
	logPath := FailureLogPath(g.opts.FailureLog)
	if logPath == "" {
		return
	}

	// Failure logging never fails generation.
	f, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		g.opts.Logger.Debug("cannot open failure log", logging.FieldPath, logPath, logging.FieldError, openErr)
		return
	}
	defer f.Close()

	if _, writeErr := f.WriteString(FormatFailure(document, text, err)); writeErr != nil {
		g.opts.Logger.Debug("cannot write failure log", logging.FieldPath, logPath, logging.FieldError, writeErr)
	}
}
