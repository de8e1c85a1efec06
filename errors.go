package cosmic

import "errors"

var (
	ErrNetwork    = errors.New("network error")
	ErrRateLimit  = errors.New("rate limit exceeded")
	ErrData       = errors.New("malformed response")
	ErrQuery      = errors.New("query rejected")
	ErrInvalidKey = errors.New("invalid api key")
)

// UserMessage переводит ошибку клиента в сообщение, которое можно показать пользователю
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimit):
		return "API rate limit exceeded. Please try again later or use your own API key."
	case errors.Is(err, ErrInvalidKey):
		return "Invalid NASA API key. Please check your configuration."
	case errors.Is(err, ErrNetwork):
		return "The upstream service could not be reached. Please try again."
	case errors.Is(err, ErrData):
		return "The upstream service returned an unexpected response."
	case errors.Is(err, ErrQuery):
		return err.Error()
	}

	return "Something went wrong."
}
