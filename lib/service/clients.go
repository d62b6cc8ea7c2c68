package service

import (
	"context"
	"fmt"

	"github.com/altamira-viajes/backoffice/db/models"
)

func (svc *AgencyService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client.FullName == "" || client.DocumentNumber == "" {
		return nil, fmt.Errorf("%w: full name and document number are required", ErrConfiguration)
	}
	if _, err := svc.DB.NewInsert().Model(client).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: a client with document number %s already exists", ErrConfiguration, client.DocumentNumber)
		}
		return nil, translateDBError(err)
	}
	return client, nil
}

func (svc *AgencyService) FindClient(ctx context.Context, clientID int64) (*models.Client, error) {
	client := new(models.Client)
	err := svc.DB.NewSelect().Model(client).
		Where("client.id = ?", clientID).
		Where("client.deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return client, nil
}

func (svc *AgencyService) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	clients := []models.Client{}
	q := svc.DB.NewSelect().Model(&clients).Where("client.deleted_at IS NULL")
	if search != "" {
		q = q.Where("full_name ILIKE ? OR document_number ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := q.Order("full_name ASC").Limit(100).Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return clients, nil
}
