package get_availability

import "errors"

var (
	// ErrInvalidService возвращается при пустом или некорректном списке услуг
	ErrInvalidService = errors.New("get_availability: invalid service list")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
