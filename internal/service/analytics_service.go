package service

import (
	"context"

	"github.com/insureline/helpdesk/internal/repository"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

// TeamAnalytics is the manager dashboard payload: per-staff workload
// plus overall ticket counts.
type TeamAnalytics struct {
	Team  []repository.StaffWorkload
	Stats repository.TicketStats
}

// AnalyticsService aggregates workload and ticket statistics.
type AnalyticsService struct {
	staff   repository.StaffRepository
	tickets repository.TicketRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(staffRepo repository.StaffRepository, ticketRepo repository.TicketRepository) *AnalyticsService {
	return &AnalyticsService{staff: staffRepo, tickets: ticketRepo}
}

// Overview returns the team workload and ticket stats.
func (s *AnalyticsService) Overview(ctx context.Context) (*TeamAnalytics, error) {
	team, err := s.staff.ListWithWorkload(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TeamAnalytics{Team: team, Stats: *stats}, nil
}
