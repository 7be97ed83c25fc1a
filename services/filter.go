package services

import (
	"strings"

	"github.com/Dosada05/hackfest/models"
)

// FilterRegistrations оставляет записи, у которых имя лидера, email, название
// команды, платежный идентификатор или выбранная задача содержат term без учета
// регистра. Пустой term возвращает записи без изменений.
func FilterRegistrations(records []*models.Registration, term string) []*models.Registration {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	out := make([]*models.Registration, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r *models.Registration, needle string) bool {
	for _, field := range []string{r.Name, r.Email, r.TeamName, r.PaymentReference, r.SelectedProblem} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
