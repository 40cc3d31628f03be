package catalog

// Service модель услуги из CatalogService
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	PriceKind       string  `json:"price_kind"` // "fixed", "range" или "consult"
	Price           float64 `json:"price"`
	PriceMax        float64 `json:"price_max,omitempty"` // Только для price_kind=range
	Active          bool    `json:"active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
