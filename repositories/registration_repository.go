package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/hackfest/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrRegistrationInvalid   = errors.New("registration violates a storage constraint")
	ErrRegistrationDuplicate = errors.New("registration id already exists")
)

const registrationColumns = `id, leader_name, email, phone, college_name, department, team_name,
	team_size, team_members, selected_problem, payment_reference, submitted_at`

// RegistrationRepository - хранилище регистраций только на добавление.
type RegistrationRepository interface {
	// Append записывает r и выставляет r.ID и r.SubmittedAt из хранилища.
	Append(ctx context.Context, r *models.Registration) (string, error)
	// ListAll возвращает все регистрации от новых к старым.
	ListAll(ctx context.Context) ([]*models.Registration, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Append(ctx context.Context, reg *models.Registration) (string, error) {
	members, err := encodeMembers(reg.TeamMembers)
	if err != nil {
		return "", fmt.Errorf("failed to encode team members: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO registrations (id, leader_name, email, phone, college_name, department, team_name,
			team_size, team_members, selected_problem, payment_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, submitted_at`

	err = r.db.QueryRowContext(ctx, query,
		id,
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.CollegeName,
		reg.Department,
		reg.TeamName,
		reg.TeamSize,
		members,
		reg.SelectedProblem,
		reg.PaymentReference,
	).Scan(&reg.ID, &reg.SubmittedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return "", ErrRegistrationDuplicate
			case "23514", "23502": // check_violation, not_null_violation
				return "", fmt.Errorf("%w: %s", ErrRegistrationInvalid, pqErr.Constraint)
			}
		}
		return "", fmt.Errorf("failed to insert registration: %w", err)
	}
	return reg.ID, nil
}

func (r *postgresRegistrationRepository) ListAll(ctx context.Context) ([]*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		registrations = append(registrations, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}
