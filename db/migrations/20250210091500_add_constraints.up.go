package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- receipt numbers are allocated from a single global sequence so
			-- concurrent payment transactions can never hand out duplicates
				CREATE SEQUENCE IF NOT EXISTS payment_receipt_seq START 1;
				CREATE SEQUENCE IF NOT EXISTS reservation_code_seq START 1;

			-- a client may appear only once per reservation
				ALTER TABLE reservation_clients
				ADD CONSTRAINT uniq_reservation_client
				UNIQUE (reservation_id, client_id);

			-- one installment sequence number per account
				ALTER TABLE installments
				ADD CONSTRAINT uniq_account_sequence
				UNIQUE (account_id, sequence);

			-- installment amounts are positive, paid never exceeds owed
				ALTER TABLE installments
				ADD CONSTRAINT check_installment_amount
				CHECK (amount > 0);
				ALTER TABLE installments
				ADD CONSTRAINT check_installment_paid_bounds
				CHECK (paid_amount >= 0 AND paid_amount <= amount);

			-- payments are positive and settle exactly one installment
				ALTER TABLE payments
				ADD CONSTRAINT check_payment_amount
				CHECK (amount > 0);

			-- pending balance can never go negative
				ALTER TABLE running_accounts
				ADD CONSTRAINT check_pending_balance
				CHECK (pending_balance >= 0);

			-- guard against an account whose installments would collect more
			-- than the account is owed
				CREATE OR REPLACE FUNCTION check_account_collection()
					RETURNS TRIGGER AS $$
				DECLARE
					collected NUMERIC;
					owed NUMERIC;
				BEGIN
					SELECT INTO collected COALESCE(SUM(paid_amount), 0)
					FROM installments
					WHERE installments.account_id = NEW.account_id
					AND installments.status != 'cancelled';

					SELECT INTO owed total_amount - down_payment
					FROM running_accounts
					WHERE id = NEW.account_id;

					IF collected > owed
					THEN
						RAISE EXCEPTION 'collection exceeds amount owed [account_id:%] collected [%] owed [%]',
						NEW.account_id,
						collected,
						owed;
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql;
				CREATE TRIGGER check_account_collection
				AFTER INSERT OR UPDATE ON installments
				FOR EACH ROW EXECUTE PROCEDURE check_account_collection();
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
