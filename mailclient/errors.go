package mailclient

import (
	"errors"
	"fmt"
)

// HTTPError - ответ почтового API со статусом вне 2xx.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus возвращает true, если err или обернутая в нее ошибка является HTTPError с данным кодом.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
