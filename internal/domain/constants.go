package domain

import "github.com/m04kA/SHS-AppointmentService/pkg/types"

// Default schedule values (used when the singleton config row is absent)
const (
	DefaultOpeningTime            = types.TimeString("09:00")
	DefaultClosingTime            = types.TimeString("20:00")
	DefaultSlotGranularityMinutes = 30
)

// Business policy constants
const (
	// Минимальное время до начала записи для отмены/переноса клиентом
	// Фиксированная политика бизнеса, не настраивается через конфиг
	ModificationNoticeHours = 48

	MinutesPerDay = 24 * 60

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NotificationType тип уведомления в журнале отправки
type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationReminder3d   NotificationType = "reminder_3days"
	NotificationReminder1d   NotificationType = "reminder_1day"
)

// ReminderTypes типы напоминаний, обрабатываемые периодическим обходом
var ReminderTypes = []NotificationType{
	NotificationReminder3d,
	NotificationReminder1d,
}
