package models

// Gender задаёт допустимые значения пола участника команды.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid сообщает, входит ли g в допустимый набор.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// TeamMember - позиционная запись в списке участников регистрации.
// Собственного идентификатора не имеет.
type TeamMember struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender Gender `json:"gender"`
}
