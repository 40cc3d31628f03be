package scheduling

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("scheduling: duration must be positive")

	// ErrInternal возвращается при внутренних ошибках расчёта доступности
	ErrInternal = errors.New("scheduling: internal error")
)
