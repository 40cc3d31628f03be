package get_month_availability

import "errors"

var (
	// ErrInvalidService возвращается при пустом или некорректном списке услуг
	ErrInvalidService = errors.New("get_month_availability: invalid service list")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_month_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_month_availability: internal error")
)
