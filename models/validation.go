package models

import (
	"fmt"
	"strings"

	"github.com/Dosada05/hackfest/utils"
)

// Validate проверяет базовые ограничения формы и возвращает поле -> сообщение
// для каждого нарушения. При paymentLink платежный идентификатор должен быть
// http(s) ссылкой.
func (d *Draft) Validate(catalog ProblemCatalog, paymentLink bool) map[string]string {
	errs := make(map[string]string)

	required := map[string]string{
		"name":        d.Name,
		"collegeName": d.CollegeName,
		"department":  d.Department,
		"teamName":    d.TeamName,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs[field] = "must be provided"
		}
	}

	if !utils.IsValidEmail(d.Email) {
		errs["email"] = "must be a valid email address"
	}
	if !utils.IsValidPhone(d.Phone) {
		errs["phone"] = "must be a 10-digit phone number"
	}

	if d.TeamSize < MinTeamSize || d.TeamSize > MaxTeamSize {
		errs["teamSize"] = ErrInvalidTeamSize.Error()
	} else if d.TeamSize != len(d.TeamMembers) {
		errs["teamMembers"] = ErrTeamSizeMismatch.Error()
	}

	for i, m := range d.TeamMembers {
		prefix := fmt.Sprintf("teamMembers[%d].", i)
		if strings.TrimSpace(m.Name) == "" {
			errs[prefix+"name"] = "must be provided"
		}
		if !utils.IsValidEmail(m.Email) {
			errs[prefix+"email"] = "must be a valid email address"
		}
		if !utils.IsValidPhone(m.Phone) {
			errs[prefix+"phone"] = "must be a 10-digit phone number"
		}
		if !m.Gender.Valid() {
			errs[prefix+"gender"] = "must be one of Male, Female, Other"
		}
	}

	if !catalog.Contains(d.SelectedProblem) {
		errs["selectedProblem"] = "must be one of the listed problem statements"
	}

	ref := strings.TrimSpace(d.PaymentReference)
	switch {
	case ref == "":
		errs["paymentReference"] = "must be provided"
	case paymentLink && !utils.IsHTTPURL(ref):
		errs["paymentReference"] = "must be a link to the payment submission"
	}

	return errs
}
