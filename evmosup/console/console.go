package console

import (
	"fmt"
	"io"
	"os"

	. "github.com/logrusorgru/aurora"
)

// Output is where operator facing messages go
var Output io.Writer = os.Stdout

// Error logs en error
func Error(a interface{}) {
	fmt.Fprintln(os.Stderr, Bold(Red(a)))
}

// Errorf logs an error (printf format)
func Errorf(format string, a ...interface{}) {
	Error(fmt.Sprintf(format, a...))
}

// Fatal logs an error, then exits
func Fatal(a interface{}) {
	Error(a)
	os.Exit(1)
}

// Info render informational message
func Info(a interface{}) {
	fmt.Fprintln(Output, Cyan(a))
}

// Infof render informational message (printf version)
func Infof(format string, a ...interface{}) {
	Info(fmt.Sprintf(format, a...))
}

// Warnf renders a warning (printf version)
func Warnf(format string, a ...interface{}) {
	fmt.Fprintln(Output, Yellow(fmt.Sprintf(format, a...)))
}

// Successf renders a completion message (printf version)
func Successf(format string, a ...interface{}) {
	fmt.Fprintln(Output, Green(fmt.Sprintf(format, a...)))
}
