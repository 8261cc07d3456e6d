package service

import (
	"fmt"
	"log"

	"reservasalas/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// UpdateFinishedReservations marks active reservations whose end time has
// passed as finished, so they drop out of the current/future listings.
func (s *JobService) UpdateFinishedReservations() error {
	reservationIDs, err := s.Repo.GetActiveReservationIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get active reservations past end time: %w", err)
	}

	if len(reservationIDs) == 0 {
		return nil
	}

	log.Printf("Cron Job: marking %d reservations as '%s'", len(reservationIDs), statusFinished)

	if err := s.Repo.UpdateReservationStatuses(reservationIDs, statusFinished); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}
