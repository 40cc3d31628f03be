package schedule

import "errors"

var (
	// ErrInvalidSchedule возвращается при попытке сохранить некорректное расписание
	ErrInvalidSchedule = errors.New("schedule.service: invalid schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
