package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/altamira-viajes/backoffice/lib/money"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Error kinds surfaced by the core operations. Validation errors are
// detected before any write; every failed transaction rolls back
// completely.
var (
	ErrInvalidAmount        = money.ErrInvalidAmount
	ErrInvalidCurrency      = money.ErrInvalidCurrency
	ErrDuplicateAccount     = errors.New("account already exists for reservation")
	ErrConfiguration        = errors.New("configuration error")
	ErrOverpayment          = errors.New("payment exceeds installment amount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrAlreadySettled       = errors.New("installment already settled")
	ErrNotFound             = errors.New("not found")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
)

// translateDBError maps driver-level failures onto the service taxonomy.
// Serialization failures and deadlocks are retryable by the caller.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
