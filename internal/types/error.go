package types

import "fmt"

// CustomError is a typed application error that middleware can return; the
// app-level error handler turns it into the standard JSON envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%d, %s)", e.Message, e.Code, e.Type)
}
