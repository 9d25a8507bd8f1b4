package exceptions

import (
	"fmt"
	"runtime"

	"clinicdesk-service/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int    `json:"status_code"`
	Code          string `json:"code"`
	ClientMessage string `json:"error"`
	// RefreshRequired tells the frontend to run the token refresh flow
	// before retrying; only set for TOKEN_EXPIRED.
	RefreshRequired bool     `json:"refresh_required,omitempty"`
	DevMessage      string   `json:"-"`
	Location        Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s: %s (%s:%d %s)", e.Code, e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func BuildNewCustomError(err error, statusCode int, code, clientMessage, devMessage string) *CustomError {
	devMsg := devMessage
	if err != nil {
		devMsg = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMsg,
		Location:      getLocation(3),
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
