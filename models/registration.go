package models

import "time"

const (
	MinTeamSize = 1
	MaxTeamSize = 5
)

// Registration - сохраненная регистрация команды.
// После записи не изменяется и не удаляется.
type Registration struct {
	ID               string       `json:"id" db:"id"`
	Name             string       `json:"name" db:"leader_name"`
	Email            string       `json:"email" db:"email"`
	Phone            string       `json:"phone" db:"phone"`
	CollegeName      string       `json:"collegeName" db:"college_name"`
	Department       string       `json:"department" db:"department"`
	TeamName         string       `json:"teamName" db:"team_name"`
	TeamSize         int          `json:"teamSize" db:"team_size"`
	TeamMembers      []TeamMember `json:"teamMembers" db:"team_members"` // JSONB
	SelectedProblem  string       `json:"selectedProblem" db:"selected_problem"`
	PaymentReference string       `json:"paymentReference" db:"payment_reference"`
	SubmittedAt      time.Time    `json:"submittedAt" db:"submitted_at"`
}

// ParticipantCount возвращает число участников команды.
func (r *Registration) ParticipantCount() int {
	return len(r.TeamMembers)
}
