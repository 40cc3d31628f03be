package create_appointment

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// normalizeServiceIDs приводит список услуг к каноническому виду
// Отбрасывает дубли с сохранением порядка; пустой или некорректный
// список отклоняется сразу
func normalizeServiceIDs(serviceIDs []int64) ([]int64, error) {
	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidService)
	}

	seen := make(map[int64]struct{}, len(serviceIDs))
	normalized := make([]int64, 0, len(serviceIDs))

	for _, id := range serviceIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: service id must be positive", ErrInvalidService)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}

	return normalized, nil
}
