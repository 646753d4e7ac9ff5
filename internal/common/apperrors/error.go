// Package apperrors provides chainable application errors. An error can be derived
// from another one (so errors.Is matches the whole ancestry), can carry extra wrapped
// errors, and carries the process exit code the command line should terminate with.
package apperrors

// Error is the application error interface. Every method that changes the error
// returns a new value so package-level sentinels are never mutated.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derives a new error using current as template
	Msg(msg string) Error                  // new message, wraps the original
	MsgErr(msg string, err ...error) Error // new message, wraps original and extra errors
	Err(err ...error) Error                // attaches additional errors, keeps message
	SetExpandError(bool) Error             // controls whether ErrorAll expands wrapped errors
	SetExitCode(int) Error                 // sets the exit code reported by the cli
	ExitCode() int                         // exit code; 1 when never set
	Prefix(string) Error                   // adds a prefix to the error message
	Suffix(string) Error                   // adds a suffix to the error message
	ErrorAll() string                      // message including wrapped errors
	UnwrapAll() []error                    // all wrapped errors
}

// ExitCode returns the exit code carried by err, or 1 for errors that are not
// application errors. A nil error yields 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ae, ok := err.(Error); ok {
		return ae.ExitCode()
	}
	return 1
}

// Describe returns the expanded message of an application error, or err.Error()
// for any other error.
func Describe(err error) string {
	if ae, ok := err.(Error); ok {
		return ae.ErrorAll()
	}
	return err.Error()
}
