package models

import "errors"

var (
	ErrInvalidTeamSize  = errors.New("team size must be between 1 and 5")
	ErrUnknownField     = errors.New("unknown registration field")
	ErrUnknownProblem   = errors.New("problem statement is not in the configured set")
	ErrMemberIndex      = errors.New("team member index out of range")
	ErrTeamSizeMismatch = errors.New("team size does not match number of team members")
)
