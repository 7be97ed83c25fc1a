package models

// DefaultProblemStatements используется, если список задач не настроен.
var DefaultProblemStatements = []string{
	"AI-powered Mental Health Support System for Students",
	"Smart Traffic Management System using IoT",
	"Blockchain-based Voting System for Elections",
	"Sustainable Waste Management Platform",
	"Real-time Disaster Alert and Response System",
	"Smart Agriculture Monitoring with Machine Learning",
	"Healthcare Appointment Scheduling with AI Triage",
	"Carbon Footprint Tracker for Individuals",
	"Accessible Education Platform for Differently-abled",
	"Community Safety Network with Emergency Response",
}

// ProblemCatalog - перечень задач, доступных для выбора.
type ProblemCatalog []string

// NewProblemCatalog возвращает каталог из переданных задач или каталог
// по умолчанию, если список пуст.
func NewProblemCatalog(statements []string) ProblemCatalog {
	if len(statements) == 0 {
		statements = DefaultProblemStatements
	}
	c := make(ProblemCatalog, len(statements))
	copy(c, statements)
	return c
}

// Contains сообщает, есть ли choice в каталоге (точное совпадение).
func (c ProblemCatalog) Contains(choice string) bool {
	for _, p := range c {
		if p == choice {
			return true
		}
	}
	return false
}
