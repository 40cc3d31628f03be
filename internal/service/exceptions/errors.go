package exceptions

import "errors"

var (
	// ErrProfessionalNotFound пользователь не связан с активным профессионалом
	ErrProfessionalNotFound = errors.New("exceptions: professional not found")
	// ErrInvalidInput некорректные параметры запроса
	ErrInvalidInput = errors.New("exceptions: invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("exceptions: internal error")
)
