package lox

import "github.com/sirupsen/logrus"

// moduleLog is the ambient structured logger for the interpreter pipeline.
// It never writes to the channels spec section 6 reserves for `print`
// output or diagnostics. By default it emits only warnings and above (to
// stderr), and the pipeline logs only at debug level, so nothing is written
// unless a caller enables tracing with SetDebug.
var moduleLog = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}()

// SetDebug toggles debug-level tracing: the scanner logs its token count and
// Run logs the number of statements it is about to execute. The parser and
// resolver do not log. Off by default; the CLI's -v flag enables it.
func SetDebug(on bool) {
	if on {
		moduleLog.SetLevel(logrus.DebugLevel)
	} else {
		moduleLog.SetLevel(logrus.WarnLevel)
	}
}
