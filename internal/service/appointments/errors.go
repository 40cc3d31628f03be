package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrAccessDenied возвращается при попытке управлять чужой записью
	ErrAccessDenied = errors.New("appointments.service: access denied")

	// ErrTooLateToModify возвращается при нарушении правила 48 часов
	ErrTooLateToModify = errors.New("appointments.service: less than 48 hours before the appointment")

	// ErrAlreadyCancelled возвращается, когда запись уже отменена или завершена
	ErrAlreadyCancelled = errors.New("appointments.service: appointment can no longer be modified")

	// ErrSlotUnavailable возвращается, когда новый слот переноса занят
	ErrSlotUnavailable = errors.New("appointments.service: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не найден в Directory
	ErrUserNotFound = errors.New("appointments.service: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
