package appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
	"github.com/m04kA/SHS-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SHS-AppointmentService/internal/notify"
)

// Имена побочных действий в диагностике ответа
const (
	effectBusinessCalendar     = "business_calendar_event"
	effectClientCalendar       = "client_calendar_event"
	effectProfessionalCalendar = "professional_calendar_event"
	effectClientNotification   = "client_notification"
)

// cancelSideEffects удаляет события календарей и шлёт письмо об отмене
// Сбои собираются в список и не откатывают саму отмену
func (s *Service) cancelSideEffects(ctx context.Context, appt *domain.Appointment) []domain.SideEffectResult {
	results := make([]domain.SideEffectResult, 0, 4)
	client := s.resolveClient(ctx, appt.ClientID)

	if s.calendarSync != nil {
		if appt.BusinessEventID != nil {
			results = append(results, deleteResult(effectBusinessCalendar,
				s.calendarSync.DeleteEvent(ctx, *appt.BusinessEventID)))
		}
		if appt.ClientEventID != nil && client != nil && client.GoogleTokens != nil {
			results = append(results, deleteResult(effectClientCalendar,
				s.calendarSync.DeleteEventForUser(ctx, client.GoogleTokens.OAuthToken(), *appt.ClientEventID)))
		}
		if appt.ProfessionalEventID != nil {
			if profUser := s.resolveProfessionalUser(ctx, appt.ProfessionalID); profUser != nil && profUser.GoogleTokens != nil {
				results = append(results, deleteResult(effectProfessionalCalendar,
					s.calendarSync.DeleteEventForUser(ctx, profUser.GoogleTokens.OAuthToken(), *appt.ProfessionalEventID)))
			}
		}
	}

	if s.notifier != nil {
		if client == nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification,
				fmt.Errorf("client account not found")))
		} else if err := s.notifier.SendCancellation(
			notify.Recipient{Name: client.Name, Email: client.Email}, appt,
		); err != nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification, err))
		} else {
			results = append(results, domain.SideEffectOK(effectClientNotification))
		}
	}

	return results
}

// rescheduleSideEffects правит события календарей по месту и шлёт письмо о переносе
// События не пересоздаются, чтобы сохранить их идентификаторы
func (s *Service) rescheduleSideEffects(ctx context.Context, appt *domain.Appointment) []domain.SideEffectResult {
	results := make([]domain.SideEffectResult, 0, 4)
	client := s.resolveClient(ctx, appt.ClientID)

	clientName := ""
	if client != nil {
		clientName = client.Name
	}

	if s.calendarSync != nil {
		if appt.BusinessEventID != nil {
			results = append(results, updateResult(effectBusinessCalendar,
				s.calendarSync.UpdateEvent(ctx, *appt.BusinessEventID, appt, clientName)))
		}
		if appt.ClientEventID != nil && client != nil && client.GoogleTokens != nil {
			results = append(results, updateResult(effectClientCalendar,
				s.calendarSync.UpdateEventForUser(ctx, client.GoogleTokens.OAuthToken(), *appt.ClientEventID, appt, clientName)))
		}
		if appt.ProfessionalEventID != nil {
			if profUser := s.resolveProfessionalUser(ctx, appt.ProfessionalID); profUser != nil && profUser.GoogleTokens != nil {
				results = append(results, updateResult(effectProfessionalCalendar,
					s.calendarSync.UpdateEventForUser(ctx, profUser.GoogleTokens.OAuthToken(), *appt.ProfessionalEventID, appt, clientName)))
			}
		}
	}

	if s.notifier != nil {
		if client == nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification,
				fmt.Errorf("client account not found")))
		} else if err := s.notifier.SendReschedule(
			notify.Recipient{Name: client.Name, Email: client.Email}, appt,
		); err != nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification, err))
		} else {
			results = append(results, domain.SideEffectOK(effectClientNotification))
		}
	}

	return results
}

func (s *Service) resolveClient(ctx context.Context, clientID int64) *directory.User {
	user, err := s.directory.GetUser(ctx, clientID)
	if err != nil {
		s.logger.Warn("Appointments: failed to resolve client %d: %v", clientID, err)
		return nil
	}
	return user
}

func (s *Service) resolveProfessionalUser(ctx context.Context, professionalID int64) *directory.User {
	prof, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		s.logger.Warn("Appointments: failed to resolve professional %d: %v", professionalID, err)
		return nil
	}
	if prof.Email == "" {
		return nil
	}
	user, err := s.directory.GetUserByEmail(ctx, prof.Email)
	if err != nil {
		s.logger.Warn("Appointments: failed to resolve professional %d by email: %v", professionalID, err)
		return nil
	}
	return user
}

func deleteResult(effect string, ok bool) domain.SideEffectResult {
	if ok {
		return domain.SideEffectOK(effect)
	}
	return domain.SideEffectFailed(effect, fmt.Errorf("event was not deleted"))
}

func updateResult(effect string, ok bool) domain.SideEffectResult {
	if ok {
		return domain.SideEffectOK(effect)
	}
	return domain.SideEffectFailed(effect, fmt.Errorf("event was not updated"))
}
