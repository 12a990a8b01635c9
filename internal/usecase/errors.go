package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "farmmall/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
	// エンベロープのdataに載せる値（batch deleteのID一覧など）
	Data any
	// 500のときの原因（ログ用、クライアントには返さない）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewHTTPErrorWithData(status int, message string, data any) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// DB起因の500
func dbError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "db error", Err: err}
}

func internalError(err error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// ErrNotFoundなら404、それ以外は500
func notFoundOr(err error, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, message)
	}
	return dbError(err)
}

// tx内で作ったHTTPErrorはそのまま返す
func passThrough(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return dbError(err)
}
