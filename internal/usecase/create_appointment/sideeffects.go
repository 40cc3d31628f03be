package create_appointment

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

// runSideEffects выполняет побочные действия после успешной записи
// Каждое действие независимо; сбои собираются в список и не влияют
// ни друг на друга, ни на созданную запись
func (uc *UseCase) runSideEffects(ctx context.Context, appt *domain.Appointment, professional *domain.Professional) []domain.SideEffectResult {
	results := make([]domain.SideEffectResult, 0, 4)

	client, clientErr := uc.directory.GetUser(ctx, appt.ClientID)
	if clientErr != nil {
		uc.logger.Warn("CreateAppointment: failed to resolve client %d: %v", appt.ClientID, clientErr)
	}

	clientName := ""
	if client != nil {
		clientName = client.Name
	}

	var businessEventID, clientEventID, professionalEventID *string

	if uc.calendarSync != nil {
		// Календарь салона
		if id := uc.calendarSync.CreateEvent(ctx, appt, clientName); id != "" {
			businessEventID = &id
			results = append(results, domain.SideEffectOK(effectBusinessCalendar))
		} else {
			results = append(results, domain.SideEffectFailed(effectBusinessCalendar,
				fmt.Errorf("event was not created")))
		}

		// Личный календарь клиента, если подключён
		if client != nil && client.GoogleTokens != nil {
			if id := uc.calendarSync.CreateEventForUser(ctx, client.GoogleTokens.OAuthToken(), appt, clientName); id != "" {
				clientEventID = &id
				results = append(results, domain.SideEffectOK(effectClientCalendar))
			} else {
				results = append(results, domain.SideEffectFailed(effectClientCalendar,
					fmt.Errorf("event was not created")))
			}
		}

		// Личный календарь профессионала, если подключён
		if profUser := uc.resolveProfessionalUser(ctx, professional); profUser != nil && profUser.GoogleTokens != nil {
			if id := uc.calendarSync.CreateEventForUser(ctx, profUser.GoogleTokens.OAuthToken(), appt, clientName); id != "" {
				professionalEventID = &id
				results = append(results, domain.SideEffectOK(effectProfessionalCalendar))
			} else {
				results = append(results, domain.SideEffectFailed(effectProfessionalCalendar,
					fmt.Errorf("event was not created")))
			}
		}

		if businessEventID != nil || clientEventID != nil || professionalEventID != nil {
			if err := uc.apptRepo.UpdateEventIDs(ctx, appt.ID, businessEventID, clientEventID, professionalEventID); err != nil {
				uc.logger.Error("CreateAppointment: failed to store event ids for appointment %d: %v", appt.ID, err)
			}
		}
	}

	// Письмо-подтверждение клиенту
	if uc.notifier != nil {
		if client == nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification, clientErr))
		} else if err := uc.notifier.SendConfirmation(
			notify.Recipient{Name: client.Name, Email: client.Email}, appt, professional.Name,
		); err != nil {
			results = append(results, domain.SideEffectFailed(effectClientNotification, err))
		} else {
			results = append(results, domain.SideEffectOK(effectClientNotification))
		}
	}

	return results
}

func (uc *UseCase) resolveProfessionalUser(ctx context.Context, professional *domain.Professional) *directory.User {
	if professional.Email == "" {
		return nil
	}
	user, err := uc.directory.GetUserByEmail(ctx, professional.Email)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to resolve professional %d by email: %v", professional.ID, err)
		return nil
	}
	return user
}
