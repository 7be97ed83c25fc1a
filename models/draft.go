package models

import (
	"fmt"
	"sync/atomic"
)

// Draft - заполняемая регистрация, еще не сохраненная.
// Draft нельзя копировать после первого использования.
type Draft struct {
	Name             string
	Email            string
	Phone            string
	CollegeName      string
	Department       string
	TeamName         string
	TeamSize         int
	TeamMembers      []TeamMember
	SelectedProblem  string
	PaymentReference string

	inFlight atomic.Bool
}

// NewDraft возвращает пустой черновик для команды из одного человека.
func NewDraft() *Draft {
	return &Draft{
		TeamSize:    MinTeamSize,
		TeamMembers: make([]TeamMember, MinTeamSize),
	}
}

// UpdateField выставляет скалярное поле по его имени в JSON. Для размера команды
// и выбора задачи есть отдельные операции.
func (d *Draft) UpdateField(name, value string) error {
	switch name {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "phone":
		d.Phone = value
	case "collegeName":
		d.CollegeName = value
	case "department":
		d.Department = value
	case "teamName":
		d.TeamName = value
	case "paymentReference":
		d.PaymentReference = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// ResizeTeam обрезает или дополняет список участников до n записей. Записи с
// индексами меньше min(old, n) не меняются, новые записи пустые.
func (d *Draft) ResizeTeam(n int) error {
	if n < MinTeamSize || n > MaxTeamSize {
		return fmt.Errorf("%w: got %d", ErrInvalidTeamSize, n)
	}
	members := make([]TeamMember, n)
	copy(members, d.TeamMembers)
	d.TeamMembers = members
	d.TeamSize = n
	return nil
}

// SetMember заменяет участника с индексом i.
func (d *Draft) SetMember(i int, m TeamMember) error {
	if i < 0 || i >= len(d.TeamMembers) {
		return fmt.Errorf("%w: %d of %d", ErrMemberIndex, i, len(d.TeamMembers))
	}
	d.TeamMembers[i] = m
	return nil
}

// SelectProblem заменяет выбранную задачу.
func (d *Draft) SelectProblem(choice string, catalog ProblemCatalog) error {
	if !catalog.Contains(choice) {
		return fmt.Errorf("%w: %q", ErrUnknownProblem, choice)
	}
	d.SelectedProblem = choice
	return nil
}

// Snapshot возвращает запись регистрации по текущему состоянию черновика.
// Список участников копируется, последующие правки черновика его не затрагивают.
func (d *Draft) Snapshot() (Registration, error) {
	if d.TeamSize != len(d.TeamMembers) {
		return Registration{}, fmt.Errorf("%w: size %d, members %d", ErrTeamSizeMismatch, d.TeamSize, len(d.TeamMembers))
	}
	members := make([]TeamMember, len(d.TeamMembers))
	copy(members, d.TeamMembers)
	return Registration{
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		CollegeName:      d.CollegeName,
		Department:       d.Department,
		TeamName:         d.TeamName,
		TeamSize:         d.TeamSize,
		TeamMembers:      members,
		SelectedProblem:  d.SelectedProblem,
		PaymentReference: d.PaymentReference,
	}, nil
}

// BeginSubmit помечает черновик как отправляемый. Возвращает false, если
// отправка уже идет.
func (d *Draft) BeginSubmit() bool {
	return d.inFlight.CompareAndSwap(false, true)
}

// EndSubmit снимает флаг отправки.
func (d *Draft) EndSubmit() {
	d.inFlight.Store(false)
}

// Submitting сообщает, идет ли отправка.
func (d *Draft) Submitting() bool {
	return d.inFlight.Load()
}
