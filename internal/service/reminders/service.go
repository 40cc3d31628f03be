package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
)

// Service периодический обход напоминаний о предстоящих записях
// Запускается по cron каждый час; повторная отправка блокируется
// журналом уведомлений (уникальность по паре запись+тип)
type Service struct {
	appointments AppointmentRepository
	notifLog     NotificationLog
	directory    DirectoryClient
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис напоминаний
func NewService(
	appointments AppointmentRepository,
	notifLog NotificationLog,
	directory DirectoryClient,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointments: appointments,
		notifLog:     notifLog,
		directory:    directory,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Sweep обрабатывает напоминания за 3 дня и за 1 день до записи
// Ошибки отдельных писем не прерывают обход
func (s *Service) Sweep(ctx context.Context) {
	s.logger.Info("ReminderSweep: started")
	now := s.timeProvider.Now()

	windows := []struct {
		daysAhead int
		kind      domain.NotificationType
	}{
		{3, domain.NotificationReminder3d},
		{1, domain.NotificationReminder1d},
	}

	sent := 0
	for _, w := range windows {
		target := now.AddDate(0, 0, w.daysAhead)
		sent += s.processDay(ctx, target, w.kind)
	}

	s.logger.Info("ReminderSweep: finished, %d reminders sent", sent)
}

// processDay шлёт напоминания по активным записям целевого дня
func (s *Service) processDay(ctx context.Context, target time.Time, kind domain.NotificationType) int {
	day := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	filter := domain.AppointmentsFilter{StartDate: &day, EndDate: &day}

	appointments, err := s.appointments.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ReminderSweep: failed to load appointments for %s: %v", day.Format(domain.DateFormat), err)
		return 0
	}

	sent := 0
	for _, appt := range appointments {
		// Уже отправленные пропускаем по журналу, не трогая его
		already, err := s.notifLog.Exists(ctx, appt.ID, kind)
		if err != nil {
			s.logger.Error("ReminderSweep: failed to check %s for appointment %d: %v", kind, appt.ID, err)
			continue
		}
		if already {
			continue
		}

		// Вставка в журнал резервирует отправку; дубликат означает,
		// что параллельный обход уже забрал это напоминание
		fresh, err := s.notifLog.MarkSent(ctx, appt.ID, kind)
		if err != nil {
			s.logger.Error("ReminderSweep: failed to mark %s for appointment %d: %v", kind, appt.ID, err)
			continue
		}
		if !fresh {
			continue
		}

		client, err := s.directory.GetUser(ctx, appt.ClientID)
		if err != nil {
			s.logger.Warn("ReminderSweep: failed to resolve client %d: %v", appt.ClientID, err)
			continue
		}

		if err := s.notifier.SendReminder(
			notify.Recipient{Name: client.Name, Email: client.Email}, appt, kind,
		); err != nil {
			s.logger.Error("ReminderSweep: failed to send %s for appointment %d: %v", kind, appt.ID, err)
			continue
		}

		sent++
	}

	return sent
}
