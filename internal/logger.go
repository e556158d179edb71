package internal

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Runtime carries the logging context for one extraction run. Every
// component receives it explicitly; the engine holds no package-level
// logger state.
type Runtime struct {
	Log *log.Logger
}

// NewRuntime creates a runtime writing to stderr. Verbose enables debug
// output.
func NewRuntime(verbose bool) *Runtime {
	return NewRuntimeWithWriter(os.Stderr, verbose)
}

// NewRuntimeWithWriter creates a runtime with a custom log destination.
func NewRuntimeWithWriter(w io.Writer, verbose bool) *Runtime {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return &Runtime{Log: logger}
}
