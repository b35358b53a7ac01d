package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of a writer, normally stderr so stdout stays free for image data
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}

// discardLogger drops everything
type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}
