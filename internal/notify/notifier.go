package notify

import (
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/m04kA/SHS-AppointmentService/internal/domain"
)

// ErrSendFailed возвращается, когда SendGrid не принял письмо
var ErrSendFailed = errors.New("notify: failed to send email")

// Logger интерфейс логирования для отправителя
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier отправляет почтовые уведомления через SendGrid
// Отправка всегда best-effort: ошибки логируются и отдаются вызывающему
// как результат побочного действия, бизнес-операция от них не зависит
type Notifier struct {
	client    *sendgrid.Client
	from      *mail.Email
	salonName string
	log       Logger
}

// NewNotifier создает отправителя уведомлений
func NewNotifier(apiKey, fromEmail, fromName, salonName string, log Logger) *Notifier {
	return &Notifier{
		client:    sendgrid.NewSendClient(apiKey),
		from:      mail.NewEmail(fromName, fromEmail),
		salonName: salonName,
		log:       log,
	}
}

// Recipient адресат уведомления
type Recipient struct {
	Name  string
	Email string
}

// SendConfirmation отправляет подтверждение новой записи
func (n *Notifier) SendConfirmation(to Recipient, appt *domain.Appointment, professionalName string) error {
	subject := fmt.Sprintf("%s: turno confirmado", n.salonName)
	body := fmt.Sprintf(
		"Hola %s!\n\nTu turno fue confirmado.\n\n%s\nFecha: %s\nHora: %s\nProfesional: %s\n\nTe esperamos!\n%s",
		to.Name, appt.ServiceNames, appt.Date.Format("02/01/2006"), appt.StartTime, professionalName, n.salonName,
	)
	return n.send(to, subject, body)
}

// SendCancellation отправляет уведомление об отмене записи клиентом
func (n *Notifier) SendCancellation(to Recipient, appt *domain.Appointment) error {
	subject := fmt.Sprintf("%s: turno cancelado", n.salonName)
	body := fmt.Sprintf(
		"Hola %s!\n\nTu turno del %s a las %s (%s) fue cancelado.\n\nEsperamos verte pronto!\n%s",
		to.Name, appt.Date.Format("02/01/2006"), appt.StartTime, appt.ServiceNames, n.salonName,
	)
	return n.send(to, subject, body)
}

// SendReschedule отправляет уведомление о переносе записи
func (n *Notifier) SendReschedule(to Recipient, appt *domain.Appointment) error {
	subject := fmt.Sprintf("%s: turno reprogramado", n.salonName)
	body := fmt.Sprintf(
		"Hola %s!\n\nTu turno (%s) fue reprogramado.\n\nNueva fecha: %s\nNueva hora: %s\n\nTe esperamos!\n%s",
		to.Name, appt.ServiceNames, appt.Date.Format("02/01/2006"), appt.StartTime, n.salonName,
	)
	return n.send(to, subject, body)
}

// SendProfessionalCancelled отправляет уведомление об отмене со стороны салона
// Уходит клиентам, чьи записи попали под закрытый день профессионала
func (n *Notifier) SendProfessionalCancelled(to Recipient, appt *domain.Appointment, whatsApp string) error {
	subject := fmt.Sprintf("%s: tu turno fue cancelado", n.salonName)
	body := fmt.Sprintf(
		"Hola %s!\n\nLamentamos informarte que tu turno del %s a las %s (%s) fue cancelado por el salon.\n\n"+
			"Escribinos por WhatsApp al %s para reprogramarlo.\n\nDisculpa las molestias!\n%s",
		to.Name, appt.Date.Format("02/01/2006"), appt.StartTime, appt.ServiceNames, whatsApp, n.salonName,
	)
	return n.send(to, subject, body)
}

// SendReminder отправляет напоминание о предстоящей записи
func (n *Notifier) SendReminder(to Recipient, appt *domain.Appointment, reminderType domain.NotificationType) error {
	when := "en 3 dias"
	if reminderType == domain.NotificationReminder1d {
		when = "manana"
	}

	subject := fmt.Sprintf("%s: recordatorio de turno", n.salonName)
	body := fmt.Sprintf(
		"Hola %s!\n\nTe recordamos que tenes un turno %s.\n\n%s\nFecha: %s\nHora: %s\n\nTe esperamos!\n%s",
		to.Name, when, appt.ServiceNames, appt.Date.Format("02/01/2006"), appt.StartTime, n.salonName,
	)
	return n.send(to, subject, body)
}

func (n *Notifier) send(to Recipient, subject, body string) error {
	message := mail.NewSingleEmail(n.from, subject, mail.NewEmail(to.Name, to.Email), body, "")

	resp, err := n.client.Send(message)
	if err != nil {
		n.log.Error("notify: sendgrid request failed for %s: %v", to.Email, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		n.log.Error("notify: sendgrid rejected email for %s: status=%d body=%s", to.Email, resp.StatusCode, resp.Body)
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}

	n.log.Info("notify: email sent to=%s subject=%q", to.Email, subject)
	return nil
}
