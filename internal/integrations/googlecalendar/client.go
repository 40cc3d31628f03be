package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// Logger интерфейс логирования для клиента
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Calendar
// Работает с календарём салона (service account) и личными календарями
// пользователей (OAuth-токены из DirectoryService).
//
// Календарь считается вспомогательным источником: любая его недоступность
// деградирует до пустого результата и записи в лог, но не роняет запрос.
type Client struct {
	business           *calendar.Service
	oauthConfig        *oauth2.Config
	calendarID         string
	holidaysCalendarID string
	location           *time.Location
	timeout            time.Duration
	log                Logger
}

// Config настройки клиента Google Calendar
type Config struct {
	CredentialsFile    string
	CalendarID         string
	HolidaysCalendarID string
	ClientID           string
	ClientSecret       string
	RedirectURI        string
	TimeZone           string
	Timeout            time.Duration
}

// NewClient создает клиент Google Calendar
// Ошибка возможна только на этапе инициализации (битые креденшелы, неизвестная таймзона);
// дальше все сбои обрабатываются деградацией.
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("googlecalendar: unknown timezone %q: %w", cfg.TimeZone, err)
	}

	business, err := calendar.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("googlecalendar: failed to init calendar service: %w", err)
	}

	return &Client{
		business: business,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
		calendarID:         cfg.CalendarID,
		holidaysCalendarID: cfg.HolidaysCalendarID,
		location:           location,
		timeout:            cfg.Timeout,
		log:                log,
	}, nil
}

// Location возвращает таймзону, в которой живёт календарь салона
func (c *Client) Location() *time.Location {
	return c.location
}

// GetBusyIntervals получает занятые интервалы календаря салона на дату
// Событие "на весь день" блокирует все минуты от 00:00 до 24:00.
// При любой ошибке возвращает пустой список: слоты считаются только
// по локальным записям.
func (c *Client) GetBusyIntervals(ctx context.Context, date time.Time) []domain.BusyInterval {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := c.business.Events.List(c.calendarID).
		Context(ctx).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		c.log.Error("googlecalendar: failed to list events for %s, degrading to empty busy list: %v",
			date.Format("2006-01-02"), err)
		return nil
	}

	intervals := make([]domain.BusyInterval, 0, len(events.Items))
	for _, ev := range events.Items {
		if ev.Status == "cancelled" {
			continue
		}
		intervals = append(intervals, c.eventToInterval(ev, dayStart))
	}

	return intervals
}

// IsHoliday проверяет, попадает ли дата в календарь официальных праздников
// При недоступности календаря считаем день обычным
func (c *Client) IsHoliday(ctx context.Context, date time.Time) bool {
	holidays := c.HolidaysInRange(ctx, date, date)
	return holidays[date.Format("2006-01-02")]
}

// HolidaysInRange получает даты официальных праздников в диапазоне [from, to]
// Ключи результата в формате YYYY-MM-DD
func (c *Client) HolidaysInRange(ctx context.Context, from, to time.Time) map[string]bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, c.location)
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, c.location).AddDate(0, 0, 1)

	events, err := c.business.Events.List(c.holidaysCalendarID).
		Context(ctx).
		TimeMin(rangeStart.Format(time.RFC3339)).
		TimeMax(rangeEnd.Format(time.RFC3339)).
		SingleEvents(true).
		Do()
	if err != nil {
		c.log.Error("googlecalendar: failed to list holidays, treating range as regular days: %v", err)
		return map[string]bool{}
	}

	holidays := make(map[string]bool, len(events.Items))
	for _, ev := range events.Items {
		if ev.Start != nil && ev.Start.Date != "" {
			holidays[ev.Start.Date] = true
		}
	}

	return holidays
}

// CreateEvent создает событие записи в календаре салона
// Возвращает ID события или пустую строку при сбое
func (c *Client) CreateEvent(ctx context.Context, appt *domain.Appointment, clientName string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event, err := c.business.Events.Insert(c.calendarID, c.appointmentEvent(appt, clientName)).
		Context(ctx).
		Do()
	if err != nil {
		c.log.Error("googlecalendar: failed to create business event for appointment %d: %v", appt.ID, err)
		return ""
	}

	return event.Id
}

// UpdateEvent переносит событие записи в календаре салона
func (c *Client) UpdateEvent(ctx context.Context, eventID string, appt *domain.Appointment, clientName string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.business.Events.Patch(c.calendarID, eventID, c.appointmentEvent(appt, clientName)).
		Context(ctx).
		Do()
	if err != nil {
		c.log.Error("googlecalendar: failed to update business event %s: %v", eventID, err)
		return false
	}

	return true
}

// DeleteEvent удаляет событие записи из календаря салона
func (c *Client) DeleteEvent(ctx context.Context, eventID string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.business.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		c.log.Error("googlecalendar: failed to delete business event %s: %v", eventID, err)
		return false
	}

	return true
}

// CreateEventForUser создает событие в личном календаре пользователя
// tokens берутся из DirectoryService; nil означает неподключённый календарь
func (c *Client) CreateEventForUser(ctx context.Context, token *oauth2.Token, appt *domain.Appointment, clientName string) string {
	svc, err := c.userService(ctx, token)
	if err != nil {
		c.log.Warn("googlecalendar: failed to init user calendar client: %v", err)
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event, err := svc.Events.Insert("primary", c.appointmentEvent(appt, clientName)).
		Context(ctx).
		Do()
	if err != nil {
		c.log.Error("googlecalendar: failed to create user event for appointment %d: %v", appt.ID, err)
		return ""
	}

	return event.Id
}

// UpdateEventForUser переносит событие в личном календаре пользователя
func (c *Client) UpdateEventForUser(ctx context.Context, token *oauth2.Token, eventID string, appt *domain.Appointment, clientName string) bool {
	svc, err := c.userService(ctx, token)
	if err != nil {
		c.log.Warn("googlecalendar: failed to init user calendar client: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := svc.Events.Patch("primary", eventID, c.appointmentEvent(appt, clientName)).Context(ctx).Do(); err != nil {
		c.log.Error("googlecalendar: failed to update user event %s: %v", eventID, err)
		return false
	}

	return true
}

// DeleteEventForUser удаляет событие из личного календаря пользователя
func (c *Client) DeleteEventForUser(ctx context.Context, token *oauth2.Token, eventID string) bool {
	svc, err := c.userService(ctx, token)
	if err != nil {
		c.log.Warn("googlecalendar: failed to init user calendar client: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		c.log.Error("googlecalendar: failed to delete user event %s: %v", eventID, err)
		return false
	}

	return true
}

func (c *Client) userService(ctx context.Context, token *oauth2.Token) (*calendar.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("googlecalendar: user has no linked calendar")
	}
	return calendar.NewService(ctx, option.WithTokenSource(c.oauthConfig.TokenSource(ctx, token)))
}

// appointmentEvent собирает тело события из записи
func (c *Client) appointmentEvent(appt *domain.Appointment, clientName string) *calendar.Event {
	start := time.Date(appt.Date.Year(), appt.Date.Month(), appt.Date.Day(), 0, 0, 0, 0, c.location).
		Add(time.Duration(appt.StartTime.Minutes()) * time.Minute)
	end := start.Add(time.Duration(appt.TotalDurationMinutes) * time.Minute)

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", appt.ServiceNames, clientName),
		Description: fmt.Sprintf("Turno #%d", appt.ID),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
	}
}

// eventToInterval переводит событие календаря в занятый интервал дня
func (c *Client) eventToInterval(ev *calendar.Event, dayStart time.Time) domain.BusyInterval {
	// Событие на весь день: у него заполнен Date, а не DateTime
	if ev.Start == nil || ev.Start.DateTime == "" {
		return domain.BusyInterval{Start: 0, End: domain.MinutesPerDay, Source: domain.BusySourceExternal}
	}

	start, errStart := time.Parse(time.RFC3339, ev.Start.DateTime)
	end, errEnd := time.Parse(time.RFC3339, ev.End.DateTime)
	if errStart != nil || errEnd != nil {
		c.log.Warn("googlecalendar: unparseable event time in %s, blocking whole day", ev.Id)
		return domain.BusyInterval{Start: 0, End: domain.MinutesPerDay, Source: domain.BusySourceExternal}
	}

	startMin := clampMinutes(int(start.In(c.location).Sub(dayStart).Minutes()))
	endMin := clampMinutes(int(end.In(c.location).Sub(dayStart).Minutes()))

	return domain.BusyInterval{Start: startMin, End: endMin, Source: domain.BusySourceExternal}
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > domain.MinutesPerDay {
		return domain.MinutesPerDay
	}
	return m
}
