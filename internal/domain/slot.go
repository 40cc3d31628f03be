package domain

import "github.com/m04kA/SHS-AppointmentService/pkg/types"

// Slot represents a bookable time slot of exactly the requested total duration
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BusyInterval занятый промежуток дня в минутах [Start, End)
// Не персистится: живёт только внутри расчёта доступности
type BusyInterval struct {
	Start  int
	End    int
	Source BusySource
}

// BusySource источник занятого интервала
type BusySource string

const (
	BusySourceLocal    BusySource = "local"
	BusySourceExternal BusySource = "external"
)

// Overlaps returns true if the interval [start, end) overlaps the busy interval
// Граничные случаи (конец одного = начало другого) пересечением не считаются
func (b BusyInterval) Overlaps(start, end int) bool {
	return start < b.End && end > b.Start
}

// DayWindow effective working window of a professional for one day
type DayWindow struct {
	IsOpen        bool
	StartMinutes  int
	EndMinutes    int
	ClosureReason ClosureReason
}

// ClosureReason причина закрытого дня
type ClosureReason string

const (
	ClosureNone       ClosureReason = ""
	ClosureHoliday    ClosureReason = "holiday"
	ClosureDayOff     ClosureReason = "day_off"
	ClosureNonWorking ClosureReason = "non_working_day"
)

// DayStatus статус дня в месячном представлении
type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayFull      DayStatus = "full"
	DayClosed    DayStatus = "closed"
	DayFranco    DayStatus = "franco"
	DayPast      DayStatus = "past"
)
