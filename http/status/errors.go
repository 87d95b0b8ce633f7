package status

// HTTPError is an error that carries the status code it would be answered with,
// if the server is told to answer it at all.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrMalformedRequest = NewError(BadRequest, "malformed request")
	ErrEmptyRequest     = NewError(BadRequest, "no request received")
	ErrHeaderNotFound   = NewError(BadRequest, "required header not found")
	ErrRequestTooLarge  = NewError(RequestHeaderFieldsTooLarge, "request head is too large")
	ErrNotFound         = NewError(NotFound, "not found")
)
