package domain

// SideEffectResult результат одного побочного действия после успешной записи
// (синхронизация календаря, отправка письма)
// Ошибки side effect никогда не откатывают саму запись: они копятся в
// диагностический список и возвращаются вместе с успешным ответом
type SideEffectResult struct {
	Effect string // Например "business_calendar_event", "client_notification"
	OK     bool
	Reason string // Пусто при успехе
}

// SideEffectOK возвращает успешный результат побочного действия
func SideEffectOK(effect string) SideEffectResult {
	return SideEffectResult{Effect: effect, OK: true}
}

// SideEffectFailed возвращает неуспешный результат с причиной
func SideEffectFailed(effect string, err error) SideEffectResult {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return SideEffectResult{Effect: effect, OK: false, Reason: reason}
}
