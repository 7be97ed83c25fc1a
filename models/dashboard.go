package models

type ProblemCount struct {
	Problem string `json:"problem"`
	Count   int    `json:"count"`
}

type DashboardStats struct {
	RegistrationsTotal int            `json:"registrations_total"`
	ParticipantsTotal  int            `json:"participants_total"`
	ByProblem          []ProblemCount `json:"by_problem"`
}
