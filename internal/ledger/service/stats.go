package service

import (
	"context"
	"sort"

	"tisa/internal/jalali"
	"tisa/internal/ledger/models"
)

// Stats is the dashboard summary of the ledger.
type Stats struct {
	Total         int
	Pending       int
	PendingAmount int64
	Paid          int
	Bounced       int
	// Upcoming holds pending checks not yet due, soonest first, capped at 5.
	Upcoming []models.Check
}

const upcomingCap = 5

// Stats computes the dashboard summary from the current checks collection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	checks, err := s.store.LoadChecks(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(checks)}
	now := s.now()
	for _, c := range checks {
		switch c.Status {
		case models.StatusPending:
			st.Pending++
			st.PendingAmount += c.Amount
			if jalali.DaysUntilAt(now, c.DueDate) >= 0 {
				st.Upcoming = append(st.Upcoming, c)
			}
		case models.StatusPaid:
			st.Paid++
		case models.StatusBounced:
			st.Bounced++
		}
	}

	sort.SliceStable(st.Upcoming, func(i, j int) bool {
		return st.Upcoming[i].DueDate.Before(st.Upcoming[j].DueDate)
	})
	if len(st.Upcoming) > upcomingCap {
		st.Upcoming = st.Upcoming[:upcomingCap]
	}
	return st, nil
}
