package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/money"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type CreateReservationParams struct {
	TourID                int64           `json:"tour_id"`
	CustomTourName        string          `json:"custom_tour_name"`
	CustomTourDestination string          `json:"custom_tour_destination"`
	CustomTourDescription string          `json:"custom_tour_description"`
	CustomTourStartDate   time.Time       `json:"custom_tour_start_date"`
	CustomTourEndDate     time.Time       `json:"custom_tour_end_date"`
	Date                  time.Time       `json:"date"`
	HeadCount             int             `json:"head_count" validate:"required,gte=1"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	Currency              string          `json:"currency" validate:"required"`
	PrimaryClientID       int64           `json:"primary_client_id" validate:"required"`
}

// CreateReservation books a tour. Either TourID or the inline custom tour
// fields must be given; the primary client is linked in the same
// transaction.
func (svc *AgencyService) CreateReservation(ctx context.Context, p CreateReservationParams) (*models.Reservation, error) {
	if p.HeadCount < 1 {
		return nil, fmt.Errorf("%w: head count must be at least 1", ErrInvalidAmount)
	}
	if !p.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive", ErrInvalidAmount)
	}
	if err := money.CheckCurrency(p.Currency); err != nil {
		return nil, err
	}

	if p.TourID != 0 {
		if _, err := svc.FindTour(ctx, p.TourID); err != nil {
			return nil, err
		}
	} else {
		if p.CustomTourName == "" || p.CustomTourDestination == "" {
			return nil, fmt.Errorf("%w: either a tour reference or custom tour name and destination is required", ErrConfiguration)
		}
		if p.CustomTourEndDate.Before(p.CustomTourStartDate) {
			return nil, fmt.Errorf("%w: custom tour end date precedes start date", ErrConfiguration)
		}
	}
	if _, err := svc.FindClient(ctx, p.PrimaryClientID); err != nil {
		return nil, err
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}

	reservation := &models.Reservation{
		TourID:                p.TourID,
		CustomTourName:        p.CustomTourName,
		CustomTourDestination: p.CustomTourDestination,
		CustomTourDescription: p.CustomTourDescription,
		Date:                  date,
		HeadCount:             p.HeadCount,
		UnitPrice:             p.UnitPrice,
		Currency:              p.Currency,
		Status:                common.ReservationStatusPending,
	}
	if !p.CustomTourStartDate.IsZero() {
		reservation.CustomTourStartDate = bun.NullTime{Time: p.CustomTourStartDate}
		reservation.CustomTourEndDate = bun.NullTime{Time: p.CustomTourEndDate}
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(ctx, "SELECT nextval('reservation_code_seq')").Scan(&seq); err != nil {
			return err
		}
		reservation.Code = makeReservationCode(date, seq)
		if _, err := tx.NewInsert().Model(reservation).Exec(ctx); err != nil {
			return err
		}
		link := models.ReservationClient{
			ReservationID: reservation.ID,
			ClientID:      p.PrimaryClientID,
			Role:          common.ClientRolePrimary,
		}
		_, err := tx.NewInsert().Model(&link).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, translateDBError(err)
	}

	svc.Logger.Infof("Created reservation %s for client %d (%d pax, %s %s)", reservation.Code, p.PrimaryClientID, p.HeadCount, p.UnitPrice, p.Currency)
	return reservation, nil
}

// makeReservationCode formats RES-YYMM#### from the reservation date and
// the global sequence, e.g. RES-25030042.
func makeReservationCode(date time.Time, seq int64) string {
	return fmt.Sprintf("RES-%s%04d", date.Format("0601"), seq%10000)
}

func (svc *AgencyService) FindReservation(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	reservation := new(models.Reservation)
	err := svc.DB.NewSelect().Model(reservation).
		Where("reservation.id = ?", reservationID).
		Where("reservation.deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return reservation, nil
}

func (svc *AgencyService) ListReservations(ctx context.Context, status string) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	q := svc.DB.NewSelect().Model(&reservations).
		Relation("Clients").
		Relation("Clients.Client").
		Where("reservation.deleted_at IS NULL")
	if status != "" {
		q = q.Where("reservation.status = ?", status)
	}
	err := q.OrderExpr("reservation.id DESC").Limit(100).Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return reservations, nil
}

func (svc *AgencyService) UpdateReservationStatus(ctx context.Context, reservationID int64, status string) (*models.Reservation, error) {
	switch status {
	case common.ReservationStatusPending, common.ReservationStatusConfirmed,
		common.ReservationStatusCancelled, common.ReservationStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrConfiguration, status)
	}
	reservation, err := svc.FindReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	reservation.Status = status
	_, err = svc.DB.NewUpdate().Model(reservation).Column("status", "updated_at").WherePK().Exec(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return reservation, nil
}

// DeleteReservation tombstones the reservation. Refused while a running
// account references it so financial history is never orphaned.
func (svc *AgencyService) DeleteReservation(ctx context.Context, reservationID int64) error {
	reservation, err := svc.FindReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	hasAccount, err := svc.DB.NewSelect().Model((*models.RunningAccount)(nil)).
		Where("reservation_id = ?", reservationID).
		Exists(ctx)
	if err != nil {
		return translateDBError(err)
	}
	if hasAccount {
		return fmt.Errorf("%w: reservation %s has a running account", ErrConfiguration, reservation.Code)
	}
	reservation.DeletedAt = bun.NullTime{Time: time.Now()}
	_, err = svc.DB.NewUpdate().Model(reservation).Column("deleted_at").WherePK().Exec(ctx)
	return translateDBError(err)
}

// AttachClient links a client to a reservation with a role tag. The unique
// constraint rejects a duplicate client on the same reservation.
func (svc *AgencyService) AttachClient(ctx context.Context, reservationID, clientID int64, role string) (*models.ReservationClient, error) {
	if role == "" {
		role = common.ClientRoleCompanion
	}
	if role != common.ClientRolePrimary && role != common.ClientRoleCompanion {
		return nil, fmt.Errorf("%w: unknown client role %q", ErrConfiguration, role)
	}
	if _, err := svc.FindReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	if _, err := svc.FindClient(ctx, clientID); err != nil {
		return nil, err
	}
	link := &models.ReservationClient{
		ReservationID: reservationID,
		ClientID:      clientID,
		Role:          role,
	}
	if _, err := svc.DB.NewInsert().Model(link).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: client %d is already on reservation %d", ErrConfiguration, clientID, reservationID)
		}
		return nil, translateDBError(err)
	}
	return link, nil
}

type AttachDocumentParams struct {
	Type        string `json:"type" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StoragePath string `json:"storage_path" validate:"required"`
}

func (svc *AgencyService) AttachDocument(ctx context.Context, reservationID int64, p AttachDocumentParams) (*models.Document, error) {
	if !common.ValidDocumentType(p.Type) {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrConfiguration, p.Type)
	}
	if _, err := svc.FindReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	doc := &models.Document{
		ReservationID: reservationID,
		Type:          p.Type,
		Filename:      p.Filename,
		MimeType:      p.MimeType,
		SizeBytes:     p.SizeBytes,
		StoragePath:   p.StoragePath,
	}
	if _, err := svc.DB.NewInsert().Model(doc).Exec(ctx); err != nil {
		return nil, translateDBError(err)
	}
	return doc, nil
}
