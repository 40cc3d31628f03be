package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/appointment"
	profRepo "github.com/m04kA/SHS-AppointmentService/internal/infra/storage/professional"
	"github.com/m04kA/SHS-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SHS-AppointmentService/pkg/types"
)

const defaultCancellationReason = "Cancelled by client"

// Service сервис управления существующими записями
// Отмена и перенос доступны клиенту записи не позднее, чем за 48 часов
// до её начала; это фиксированная политика бизнеса, не конфигурация
type Service struct {
	appointments  AppointmentRepository
	professionals ProfessionalRepository
	schedule      ScheduleProvider
	availability  AvailabilityChecker
	directory     DirectoryClient
	calendarSync  CalendarSync // nil, если интеграция с календарём выключена
	notifier      Notifier     // nil, если уведомления выключены
	notifLog      NotificationLog
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает сервис записей
func NewService(
	appointments AppointmentRepository,
	professionals ProfessionalRepository,
	schedule ScheduleProvider,
	availability AvailabilityChecker,
	directory DirectoryClient,
	calendarSync CalendarSync,
	notifier Notifier,
	notifLog NotificationLog,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointments:  appointments,
		professionals: professionals,
		schedule:      schedule,
		availability:  availability,
		directory:     directory,
		calendarSync:  calendarSync,
		notifier:      notifier,
		notifLog:      notifLog,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetUserAppointments возвращает предстоящие записи пользователя
// Для клиента: его собственные записи. Для профессионала: записи к нему
// (учётка Directory связывается с ростером по email)
func (s *Service) GetUserAppointments(ctx context.Context, userID int64) ([]*models.AppointmentResponse, error) {
	s.logger.Info("GetUserAppointments: user=%d", userID)

	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("GetUserAppointments: failed to resolve user %d: %v", userID, err)
		return nil, ErrUserNotFound
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	filter := domain.AppointmentsFilter{StartDate: &today}

	if user.IsProfessional() {
		prof, err := s.professionals.GetByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, profRepo.ErrProfessionalNotFound) {
				s.logger.Warn("GetUserAppointments: user %d is not in the roster", userID)
				return []*models.AppointmentResponse{}, nil
			}
			s.logger.Error("GetUserAppointments: roster lookup failed: %v", err)
			return nil, fmt.Errorf("%w: roster lookup failed: %v", ErrInternal, err)
		}
		filter.ProfessionalID = &prof.ID
	} else {
		filter.ClientID = &user.ID
	}

	appointments, err := s.appointments.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	result := make([]*models.AppointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		result = append(result, models.FromDomainAppointment(appt))
	}

	s.logger.Info("GetUserAppointments: user=%d got %d appointments", userID, len(result))
	return result, nil
}

// Cancel отменяет запись клиента
func (s *Service) Cancel(ctx context.Context, appointmentID, userID int64, reason *string) (*models.ModifyResponse, error) {
	s.logger.Info("CancelAppointment: id=%d user=%d", appointmentID, userID)

	appt, err := s.loadOwnedModifiable(ctx, appointmentID, userID)
	if err != nil {
		return nil, err
	}

	cancellationReason := defaultCancellationReason
	if reason != nil && *reason != "" {
		if len(*reason) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
		}
		cancellationReason = *reason
	}

	if err := s.appointments.Cancel(ctx, appointmentID, cancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("CancelAppointment: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &cancellationReason

	sideEffects := s.cancelSideEffects(ctx, appt)

	s.logger.Info("CancelAppointment: id=%d cancelled", appointmentID)
	return &models.ModifyResponse{
		Appointment: models.FromDomainAppointment(appt),
		SideEffects: models.FromSideEffects(sideEffects),
	}, nil
}

// Reschedule переносит запись клиента на новую дату и время
// Новый слот перепроверяется в сериализуемой транзакции; старое время
// самой записи занятости не создаёт
func (s *Service) Reschedule(ctx context.Context, appointmentID, userID int64, newDate time.Time, newStartTime types.TimeString) (*models.ModifyResponse, error) {
	s.logger.Info("RescheduleAppointment: id=%d user=%d to %s %s",
		appointmentID, userID, newDate.Format(domain.DateFormat), newStartTime)

	if newDate.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := newStartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	appt, err := s.loadOwnedModifiable(ctx, appointmentID, userID)
	if err != nil {
		return nil, err
	}

	newEndTime, err := newStartTime.AddMinutes(appt.TotalDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment does not fit into the day", ErrInvalidInput)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedule, err := s.schedule.Get(txCtx)
		if err != nil {
			s.logger.Error("RescheduleAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		ok, err := s.availability.IsSlotBookableExcluding(
			txCtx, schedule, appt.ProfessionalID, appt.TotalDurationMinutes,
			newDate, newStartTime.Minutes(), appt.ID,
		)
		if err != nil {
			s.logger.Error("RescheduleAppointment: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !ok {
			s.logger.Warn("RescheduleAppointment: slot %s %s is taken", newDate.Format(domain.DateFormat), newStartTime)
			return ErrSlotUnavailable
		}

		if err := s.appointments.Reschedule(txCtx, appt.ID, newDate, newStartTime, newEndTime); err != nil {
			s.logger.Error("RescheduleAppointment: repository error: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	appt.Date = newDate
	appt.StartTime = newStartTime
	appt.EndTime = newEndTime

	// Напоминания должны уйти заново относительно новой даты
	if err := s.notifLog.DeleteByAppointment(ctx, appt.ID); err != nil {
		s.logger.Error("RescheduleAppointment: failed to purge notification log for %d: %v", appt.ID, err)
	}

	sideEffects := s.rescheduleSideEffects(ctx, appt)

	s.logger.Info("RescheduleAppointment: id=%d moved to %s %s",
		appt.ID, newDate.Format(domain.DateFormat), newStartTime)
	return &models.ModifyResponse{
		Appointment: models.FromDomainAppointment(appt),
		SideEffects: models.FromSideEffects(sideEffects),
	}, nil
}

// loadOwnedModifiable загружает запись и проверяет права и правило 48 часов
func (s *Service) loadOwnedModifiable(ctx context.Context, appointmentID, userID int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Appointments: id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Appointments: failed to load id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: failed to load appointment: %v", ErrInternal, err)
	}

	if appt.ClientID != userID {
		s.logger.Warn("Appointments: user %d does not own appointment %d", userID, appointmentID)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeModified() {
		s.logger.Warn("Appointments: id=%d has status %s", appointmentID, appt.Status)
		return nil, ErrAlreadyCancelled
	}

	// Меньше 48 часов до начала: менять уже поздно
	now := s.timeProvider.Now()
	if appt.StartsAt().Sub(now) < domain.ModificationNoticeHours*time.Hour {
		s.logger.Warn("Appointments: id=%d starts too soon to modify", appointmentID)
		return nil, ErrTooLateToModify
	}

	return appt, nil
}
