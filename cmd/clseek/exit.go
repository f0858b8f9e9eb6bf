package clseek

import "fmt"

// ExitStatus is returned by commands whose exit code carries their result,
// such as the match count of seek. main exits with Code without printing.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// maxCountStatus keeps a match count clear of the error status 255
const maxCountStatus = 254

// exitWith turns a non-zero code into an *ExitStatus
func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	if code > maxCountStatus {
		code = maxCountStatus
	}
	return &ExitStatus{Code: code}
}
