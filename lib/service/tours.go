package service

import (
	"context"
	"fmt"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/money"
)

func (svc *AgencyService) CreateTour(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	if tour.Name == "" || tour.Destination == "" {
		return nil, fmt.Errorf("%w: tour name and destination are required", ErrConfiguration)
	}
	if tour.EndDate.Before(tour.StartDate) {
		return nil, fmt.Errorf("%w: tour end date precedes start date", ErrConfiguration)
	}
	if err := money.CheckCurrency(tour.Currency); err != nil {
		return nil, err
	}
	tour.Active = true
	if _, err := svc.DB.NewInsert().Model(tour).Exec(ctx); err != nil {
		return nil, translateDBError(err)
	}
	return tour, nil
}

func (svc *AgencyService) FindTour(ctx context.Context, tourID int64) (*models.Tour, error) {
	tour := new(models.Tour)
	err := svc.DB.NewSelect().Model(tour).
		Where("tour.id = ?", tourID).
		Where("tour.deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return tour, nil
}

func (svc *AgencyService) ListTours(ctx context.Context, activeOnly bool) ([]models.Tour, error) {
	tours := []models.Tour{}
	q := svc.DB.NewSelect().Model(&tours).Where("tour.deleted_at IS NULL")
	if activeOnly {
		q = q.Where("active")
	}
	err := q.Order("start_date ASC").Limit(100).Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return tours, nil
}
