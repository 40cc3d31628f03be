package domain

import (
	"time"

	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

// ExceptionType тип исключения на день
type ExceptionType string

const (
	// ExceptionOff профессионал не работает весь день (франко)
	ExceptionOff ExceptionType = "off"
	// ExceptionCustom особое окно работы вместо общего расписания
	ExceptionCustom ExceptionType = "custom"
	// ExceptionNormal принудительно общее расписание
	// Используется, чтобы открыть выходной день или официальный праздник
	ExceptionNormal ExceptionType = "normal"
)

// DayException per-professional override of the business schedule for one day
// На пару (профессионал, дата) существует не больше одного исключения
type DayException struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	Type           ExceptionType
	StartTime      types.TimeString // Только для type=custom
	EndTime        types.TimeString // Только для type=custom
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
