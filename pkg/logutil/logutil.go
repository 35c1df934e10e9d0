// Package logutil provides logging utilities.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

var loggers []*log.Logger

var out io.Writer = io.Discard

// GetLogger gets a logger with a prefix. Logging output is discarded until
// [SetOutput] or [SetOutputFile] directs it somewhere.
func GetLogger(prefix string) *log.Logger {
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new writer.
func SetOutput(newout io.Writer) {
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the name is empty, logging output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %v", fname, err)
	}
	SetOutput(file)
	return nil
}
