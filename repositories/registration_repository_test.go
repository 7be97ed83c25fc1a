package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackfest/models"
)

func setupMock(t *testing.T) (RegistrationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRegistrationRepository(db), mock
}

func sampleRegistration() *models.Registration {
	return &models.Registration{
		Name:        "Asha",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		CollegeName: "City College",
		Department:  "CSE",
		TeamName:    "Byte Me",
		TeamSize:    2,
		TeamMembers: []models.TeamMember{
			{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Gender: models.GenderFemale},
			{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543211", Gender: models.GenderMale},
		},
		SelectedProblem:  "Healthcare",
		PaymentReference: "TXN123",
	}
}

func TestRegistrationRepository_Append(t *testing.T) {
	repo, mock := setupMock(t)
	reg := sampleRegistration()
	members, err := json.Marshal(reg.TeamMembers)
	require.NoError(t, err)

	submittedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO registrations`).
		WithArgs(sqlmock.AnyArg(), "Asha", "asha@example.com", "9876543210", "City College", "CSE",
			"Byte Me", 2, members, "Healthcare", "TXN123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "submitted_at"}).
			AddRow("0b8d7c56-1f55-4a4e-9f0e-2d8a7c2b9f10", submittedAt))

	id, err := repo.Append(context.Background(), reg)
	require.NoError(t, err)
	require.Equal(t, "0b8d7c56-1f55-4a4e-9f0e-2d8a7c2b9f10", id)
	require.Equal(t, id, reg.ID)
	require.True(t, reg.SubmittedAt.Equal(submittedAt), "timestamp comes from the store")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Append_CheckViolation(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`INSERT INTO registrations`).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "chk_team_members_len"})

	_, err := repo.Append(context.Background(), sampleRegistration())
	require.ErrorIs(t, err, ErrRegistrationInvalid)
	require.ErrorContains(t, err, "chk_team_members_len")
}

func TestRegistrationRepository_Append_TransportError(t *testing.T) {
	repo, mock := setupMock(t)
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery(`INSERT INTO registrations`).WillReturnError(boom)

	reg := sampleRegistration()
	_, err := repo.Append(context.Background(), reg)
	require.ErrorIs(t, err, boom)
	require.Empty(t, reg.ID, "no id is assigned when the write fails")
}

func TestRegistrationRepository_ListAll(t *testing.T) {
	repo, mock := setupMock(t)

	newer := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "leader_name", "email", "phone", "college_name", "department", "team_name",
		"team_size", "team_members", "selected_problem", "payment_reference", "submitted_at"}

	mock.ExpectQuery(`SELECT .+ FROM registrations ORDER BY submitted_at DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b", "Ravi", "ravi@example.com", "9876543211", "Tech U", "ECE", "Nulls",
				1, []byte(`[{"name":"Ravi","email":"ravi@example.com","phone":"9876543211","gender":"Male"}]`),
				"Agriculture", "TXN9", newer).
			AddRow("a", "Asha", "asha@example.com", "9876543210", "City College", "CSE", "Byte Me",
				1, []byte(`[{"name":"Asha","email":"asha@example.com","phone":"9876543210","gender":"Female"}]`),
				"Healthcare", "TXN123", older))

	regs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, regs, 2)
	require.Equal(t, "b", regs[0].ID)
	require.Equal(t, "a", regs[1].ID)
	require.Equal(t, models.GenderFemale, regs[1].TeamMembers[0].Gender)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_ListAll_BadMembersJSON(t *testing.T) {
	repo, mock := setupMock(t)
	cols := []string{"id", "leader_name", "email", "phone", "college_name", "department", "team_name",
		"team_size", "team_members", "selected_problem", "payment_reference", "submitted_at"}

	mock.ExpectQuery(`SELECT .+ FROM registrations`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a", "Asha", "", "", "", "", "", 1, []byte(`{`), "", "", time.Now()))

	_, err := repo.ListAll(context.Background())
	require.ErrorContains(t, err, "team_members")
}
