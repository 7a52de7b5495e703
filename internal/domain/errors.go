package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeDataCorruption     = "DATA_CORRUPTION"
	CodeCancelled          = "CANCELLED"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyCommented   = "ALREADY_COMMENTED"
)

var (
	// ErrStorageUnavailable - хранилище недоступно или не ответило вовремя
	ErrStorageUnavailable = &DomainError{
		Code:    CodeStorageUnavailable,
		Message: "storage unavailable",
	}

	// ErrInvalidArgument - некорректный аргумент, запрос в БД не выполнялся
	ErrInvalidArgument = &DomainError{
		Code:    CodeInvalidArgument,
		Message: "invalid argument",
	}

	// ErrDataCorruption - в БД лежит значение вне допустимого набора
	ErrDataCorruption = &DomainError{
		Code:    CodeDataCorruption,
		Message: "stored data is corrupted",
	}

	// ErrCancelled - запрос отменён вызывающей стороной
	ErrCancelled = &DomainError{
		Code:    CodeCancelled,
		Message: "request cancelled",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrAlreadyCommented - комментарий к finding уже опубликован
	ErrAlreadyCommented = &DomainError{
		Code:    CodeAlreadyCommented,
		Message: "finding already has a comment",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInvalidArgumentError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewDataCorruptionError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeDataCorruption,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap возвращает копию base с причиной err
func Wrap(base *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}
