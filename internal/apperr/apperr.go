package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error: типизированная доменная ошибка с кодом и HTTP-статусом.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is сравнивает по коду, поэтому errors.Is(Wrap(err, ErrNotFound...), ErrNotFound) == true.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func Wrap(err error, base *Error, message string) *Error {
	if message == "" {
		message = base.Message
	}
	return &Error{Code: base.Code, Status: base.Status, Message: message, Err: err}
}

// WithMessage: копия base с другим текстом для пользователя.
func WithMessage(base *Error, message string) *Error {
	return &Error{Code: base.Code, Status: base.Status, Message: message}
}

var (
	ErrDataUnavailable  = New("DATA_UNAVAILABLE", http.StatusServiceUnavailable, "База данных недоступна")
	ErrInvalidInput     = New("INVALID_INPUT", http.StatusBadRequest, "Неверные входные данные")
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "Данные не найдены")
	ErrIncompleteRecord = New("INCOMPLETE_RECORD", http.StatusUnprocessableEntity, "В данных студента отсутствует логин или пароль")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "Внутренняя ошибка")
)

// FromError приводит любую ошибку к *Error (неизвестные: в ErrInternal).
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, "")
}
