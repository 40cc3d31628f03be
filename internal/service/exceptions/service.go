package exceptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	excRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/exception"
	profRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/professional"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

const cancelledByProfessionalReason = "Cancelled by the professional"

// Service сервис управления исключениями расписания профессионала
// Профессионал работает от своего аккаунта: учётка Directory связывается
// с ростером по email
type Service struct {
	exceptions    ExceptionRepository
	appointments  AppointmentRepository
	professionals ProfessionalRepository
	schedule      ScheduleProvider
	directory     DirectoryClient
	calendarSync  CalendarSync // nil, если интеграция с календарём выключена
	notifier      Notifier     // nil, если уведомления выключены
	notifLog      NotificationLog
	logger        Logger
}

// SetResult результат установки исключения
type SetResult struct {
	Exception             *domain.DayException
	CancelledAppointments int
}

// NewService создает сервис исключений
func NewService(
	exceptions ExceptionRepository,
	appointments AppointmentRepository,
	professionals ProfessionalRepository,
	schedule ScheduleProvider,
	directory DirectoryClient,
	calendarSync CalendarSync,
	notifier Notifier,
	notifLog NotificationLog,
	logger Logger,
) *Service {
	return &Service{
		exceptions:    exceptions,
		appointments:  appointments,
		professionals: professionals,
		schedule:      schedule,
		directory:     directory,
		calendarSync:  calendarSync,
		notifier:      notifier,
		notifLog:      notifLog,
		logger:        logger,
	}
}

// Get возвращает исключение профессионала на дату
// Отсутствие исключения не ошибка: возвращается nil
func (s *Service) Get(ctx context.Context, userID int64, date time.Time) (*domain.DayException, error) {
	prof, _, err := s.resolveProfessional(ctx, userID)
	if err != nil {
		return nil, err
	}

	exc, err := s.exceptions.GetByProfessionalAndDate(ctx, prof.ID, date)
	if err != nil {
		if errors.Is(err, excRepo.ErrExceptionNotFound) {
			return nil, nil
		}
		s.logger.Error("GetDayException: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to load exception: %v", ErrInternal, err)
	}

	return exc, nil
}

// Set создает или заменяет исключение на дату
// Существующие записи, выпадающие из нового рабочего окна, отменяются
// с письмом клиенту; для type=off отменяется весь день
func (s *Service) Set(ctx context.Context, userID int64, date time.Time, excType domain.ExceptionType, startTime, endTime types.TimeString) (*SetResult, error) {
	s.logger.Info("SetDayException: user=%d date=%s type=%s", userID, date.Format(domain.DateFormat), excType)

	if err := validateException(date, excType, startTime, endTime); err != nil {
		return nil, err
	}

	prof, profUser, err := s.resolveProfessional(ctx, userID)
	if err != nil {
		return nil, err
	}

	exc := &domain.DayException{
		ProfessionalID: prof.ID,
		Date:           date,
		Type:           excType,
	}
	if excType == domain.ExceptionCustom {
		exc.StartTime = startTime
		exc.EndTime = endTime
	}

	saved, err := s.exceptions.Upsert(ctx, exc)
	if err != nil {
		s.logger.Error("SetDayException: upsert failed: %v", err)
		return nil, fmt.Errorf("%w: failed to save exception: %v", ErrInternal, err)
	}

	cancelled, err := s.cancelConflicting(ctx, prof, profUser, saved)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetDayException: professional=%d date=%s saved, %d appointments cancelled",
		prof.ID, date.Format(domain.DateFormat), cancelled)
	return &SetResult{Exception: saved, CancelledAppointments: cancelled}, nil
}

// Delete удаляет исключение профессионала на дату
func (s *Service) Delete(ctx context.Context, userID int64, date time.Time) error {
	prof, _, err := s.resolveProfessional(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.exceptions.Delete(ctx, prof.ID, date); err != nil {
		s.logger.Error("DeleteDayException: repository error: %v", err)
		return fmt.Errorf("%w: failed to delete exception: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteDayException: professional=%d date=%s", prof.ID, date.Format(domain.DateFormat))
	return nil
}

// cancelConflicting отменяет активные записи дня, не влезающие в новое окно
func (s *Service) cancelConflicting(ctx context.Context, prof *domain.Professional, profUser *directory.User, exc *domain.DayException) (int, error) {
	window, closed, err := s.effectiveWindow(ctx, exc)
	if err != nil {
		return 0, err
	}

	day := exc.Date
	filter := domain.AppointmentsFilter{
		ProfessionalID: &prof.ID,
		StartDate:      &day,
		EndDate:        &day,
	}
	appts, err := s.appointments.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("SetDayException: failed to load appointments: %v", err)
		return 0, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	whatsApp := ""
	if schedule, err := s.schedule.Get(ctx); err == nil {
		whatsApp = schedule.WhatsAppNumber
	}

	cancelled := 0
	for _, appt := range appts {
		if !closed && fitsWindow(appt, window) {
			continue
		}

		if err := s.appointments.Cancel(ctx, appt.ID, cancelledByProfessionalReason); err != nil {
			s.logger.Error("SetDayException: failed to cancel appointment %d: %v", appt.ID, err)
			continue
		}
		cancelled++

		if err := s.notifLog.DeleteByAppointment(ctx, appt.ID); err != nil {
			s.logger.Error("SetDayException: failed to purge notification log for %d: %v", appt.ID, err)
		}

		s.dropCalendarEvents(ctx, appt, profUser)
		s.notifyClient(ctx, appt, whatsApp)
	}

	return cancelled, nil
}

// effectiveWindow возвращает рабочее окно после применения исключения
// closed=true означает, что день закрыт целиком
func (s *Service) effectiveWindow(ctx context.Context, exc *domain.DayException) (domain.DayWindow, bool, error) {
	switch exc.Type {
	case domain.ExceptionOff:
		return domain.DayWindow{}, true, nil
	case domain.ExceptionCustom:
		return domain.DayWindow{
			IsOpen:       true,
			StartMinutes: exc.StartTime.Minutes(),
			EndMinutes:   exc.EndTime.Minutes(),
		}, false, nil
	default:
		schedule, err := s.schedule.Get(ctx)
		if err != nil {
			s.logger.Error("SetDayException: failed to get schedule: %v", err)
			return domain.DayWindow{}, false, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		return domain.DayWindow{
			IsOpen:       true,
			StartMinutes: schedule.OpeningTime.Minutes(),
			EndMinutes:   schedule.ClosingTime.Minutes(),
		}, false, nil
	}
}

func fitsWindow(appt *domain.Appointment, window domain.DayWindow) bool {
	return appt.StartTime.Minutes() >= window.StartMinutes &&
		appt.EndTime.Minutes() <= window.EndMinutes
}

// dropCalendarEvents удаляет события отменённой записи из всех календарей
func (s *Service) dropCalendarEvents(ctx context.Context, appt *domain.Appointment, profUser *directory.User) {
	if s.calendarSync == nil {
		return
	}

	if appt.BusinessEventID != nil {
		s.calendarSync.DeleteEvent(ctx, *appt.BusinessEventID)
	}
	if appt.ClientEventID != nil {
		if client, err := s.directory.GetUser(ctx, appt.ClientID); err == nil && client.GoogleTokens != nil {
			s.calendarSync.DeleteEventForUser(ctx, client.GoogleTokens.OAuthToken(), *appt.ClientEventID)
		}
	}
	if appt.ProfessionalEventID != nil && profUser != nil && profUser.GoogleTokens != nil {
		s.calendarSync.DeleteEventForUser(ctx, profUser.GoogleTokens.OAuthToken(), *appt.ProfessionalEventID)
	}
}

// notifyClient шлёт клиенту письмо об отмене по инициативе профессионала
func (s *Service) notifyClient(ctx context.Context, appt *domain.Appointment, whatsApp string) {
	if s.notifier == nil {
		return
	}

	client, err := s.directory.GetUser(ctx, appt.ClientID)
	if err != nil {
		s.logger.Warn("SetDayException: failed to resolve client %d: %v", appt.ClientID, err)
		return
	}

	if err := s.notifier.SendProfessionalCancelled(
		notify.Recipient{Name: client.Name, Email: client.Email}, appt, whatsApp,
	); err != nil {
		s.logger.Warn("SetDayException: failed to notify client %d: %v", appt.ClientID, err)
	}
}

func (s *Service) resolveProfessional(ctx context.Context, userID int64) (*domain.Professional, *directory.User, error) {
	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("Exceptions: failed to resolve user %d: %v", userID, err)
		return nil, nil, ErrProfessionalNotFound
	}

	prof, err := s.professionals.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, profRepo.ErrProfessionalNotFound) {
			s.logger.Warn("Exceptions: user %d is not in the roster", userID)
			return nil, nil, ErrProfessionalNotFound
		}
		s.logger.Error("Exceptions: roster lookup failed: %v", err)
		return nil, nil, fmt.Errorf("%w: roster lookup failed: %v", ErrInternal, err)
	}

	return prof, user, nil
}

func validateException(date time.Time, excType domain.ExceptionType, startTime, endTime types.TimeString) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch excType {
	case domain.ExceptionOff, domain.ExceptionNormal:
		return nil
	case domain.ExceptionCustom:
		if err := startTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		if err := endTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !startTime.IsBefore(endTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown exception type %q", ErrInvalidInput, excType)
	}
}
