package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/repositories"
)

type AdminService interface {
	ListRegistrations(ctx context.Context, search string) ([]*models.Registration, error)
	Stats(ctx context.Context, search string) (models.DashboardStats, error)
}

type adminService struct {
	repo repositories.RegistrationRepository
}

func NewAdminService(repo repositories.RegistrationRepository) AdminService {
	return &adminService{repo: repo}
}

// ListRegistrations возвращает все регистрации от новых к старым с учетом поиска.
func (s *adminService) ListRegistrations(ctx context.Context, search string) ([]*models.Registration, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Err: fmt.Errorf("list registrations: %w", err)}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})
	return FilterRegistrations(records, search), nil
}

func (s *adminService) Stats(ctx context.Context, search string) (models.DashboardStats, error) {
	records, err := s.ListRegistrations(ctx, search)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return ComputeStats(records), nil
}

// ComputeStats считает сводку по записям. Задачи упорядочены по количеству, затем по имени.
func ComputeStats(records []*models.Registration) models.DashboardStats {
	stats := models.DashboardStats{RegistrationsTotal: len(records)}
	counts := make(map[string]int)
	for _, r := range records {
		stats.ParticipantsTotal += r.ParticipantCount()
		counts[r.SelectedProblem]++
	}

	stats.ByProblem = make([]models.ProblemCount, 0, len(counts))
	for p, n := range counts {
		stats.ByProblem = append(stats.ByProblem, models.ProblemCount{Problem: p, Count: n})
	}
	sort.Slice(stats.ByProblem, func(i, j int) bool {
		a, b := stats.ByProblem[i], stats.ByProblem[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Problem < b.Problem
	})
	return stats
}
