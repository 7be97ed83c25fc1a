package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/Dosada05/hackfest/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		r       models.Registration
		members []byte
	)
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.CollegeName,
		&r.Department,
		&r.TeamName,
		&r.TeamSize,
		&members,
		&r.SelectedProblem,
		&r.PaymentReference,
		&r.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(members, &r.TeamMembers); err != nil {
		return nil, fmt.Errorf("failed to decode team_members of registration %s: %w", r.ID, err)
	}
	return &r, nil
}

func encodeMembers(members []models.TeamMember) ([]byte, error) {
	if members == nil {
		members = []models.TeamMember{}
	}
	return json.Marshal(members)
}
