package create_appointment

import "errors"

var (
	// ErrInvalidService возвращается при пустом или некорректном списке услуг
	ErrInvalidService = errors.New("create_appointment: invalid service list")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден или неактивен
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrNoProfessionalAvailable возвращается, когда никто не свободен в запрошенный слот
	ErrNoProfessionalAvailable = errors.New("create_appointment: no professional available for this slot")

	// ErrSlotUnavailable возвращается, когда слот занят на момент фиксации записи
	ErrSlotUnavailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
