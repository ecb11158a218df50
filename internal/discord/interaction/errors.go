package interaction

import (
	"errors"
	"net/http"
)

// Request rejections. Handlers wrap these with the underlying cause; only the
// sentinel text is ever written back to the caller.
var (
	ErrMethodNotAllowed       = errors.New("method not allowed")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrUnsupportedInteraction = errors.New("unsupported interaction")
	ErrMalformedRequest       = errors.New("invalid request")

	errInternal = errors.New("internal server error")
)

var statusCodes = []struct {
	err        error
	statusCode int
}{
	{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
	{ErrInvalidSignature, http.StatusUnauthorized},
	{ErrUnsupportedInteraction, http.StatusBadRequest},
	{ErrMalformedRequest, http.StatusBadRequest},
}

// ErrorResponse converts a rejection into the response sent to Discord.
func ErrorResponse(err error) Response {
	for _, s := range statusCodes {
		if errors.Is(err, s.err) {
			return newErrorResponse(s.statusCode, s.err)
		}
	}
	return newErrorResponse(http.StatusInternalServerError, errInternal)
}

type errorBody struct {
	Error string `json:"error"`
}

func newErrorResponse(statusCode int, err error) Response {
	body, _ := encode(errorBody{Error: err.Error()})
	return Response{
		StatusCode: statusCode,
		Body:       body,
	}
}
