package perror

import "fmt"

type PunchError struct {
	Err string
}

// New returns a new PunchError with the given format and arguments.
func New(format string, args ...interface{}) *PunchError {
	return &PunchError{Err: fmt.Sprintf(format, args...)}
}

func (e *PunchError) Error() string {
	return e.Err
}
