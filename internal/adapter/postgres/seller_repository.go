package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// SellerRepository implements port.SellerRepository and port.FundLedger.
// Every ledger call locks the seller row with SELECT ... FOR UPDATE inside
// the caller's transaction, or inside its own when called standalone.
type SellerRepository struct {
	tx *Transactor
}

// NewSellerRepository returns a repository sharing transactions with tx.
func NewSellerRepository(tx *Transactor) *SellerRepository {
	return &SellerRepository{tx: tx}
}

func (r *SellerRepository) Create(ctx context.Context, s *domain.Seller) error {
	err := r.tx.conn(ctx).QueryRow(ctx, `
        INSERT INTO sellers (username, email, password_hash, role, balance)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`,
		s.Username, s.Email, s.PasswordHash, s.Role, s.Balance,
	).Scan(&s.ID, &s.CreatedAt)
	return mapError(err, "create seller %q", s.Username)
}

func (r *SellerRepository) Get(ctx context.Context, id int64) (*domain.Seller, error) {
	row := r.tx.conn(ctx).QueryRow(ctx, `
        SELECT id, username, email, password_hash, role, balance, created_at
        FROM sellers WHERE id = $1`, id)
	s, err := scanSeller(row)
	if err != nil {
		return nil, mapError(err, "seller %d", id)
	}
	return s, nil
}

func (r *SellerRepository) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	row := r.tx.conn(ctx).QueryRow(ctx, `
        SELECT id, username, email, password_hash, role, balance, created_at
        FROM sellers WHERE username = $1`, username)
	s, err := scanSeller(row)
	if err != nil {
		return nil, mapError(err, "seller %q", username)
	}
	return s, nil
}

func (r *SellerRepository) List(ctx context.Context) ([]domain.Seller, error) {
	rows, err := r.tx.conn(ctx).Query(ctx, `
        SELECT id, username, email, password_hash, role, balance, created_at
        FROM sellers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Seller, error) {
		s, err := scanSeller(row)
		if err != nil {
			return domain.Seller{}, err
		}
		return *s, nil
	})
}

// Delete removes the seller; campaigns and movements cascade. Campaign rows
// are locked first to keep the campaign-then-seller lock order.
func (r *SellerRepository) Delete(ctx context.Context, id int64) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := r.tx.conn(ctx)
		if _, err := q.Exec(ctx, `SELECT id FROM campaigns WHERE seller_id = $1 FOR UPDATE`, id); err != nil {
			return err
		}
		tag, err := q.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: seller %d", port.ErrNotFound, id)
		}
		return nil
	})
}

// Reserve deducts amount from the seller's balance or fails with
// port.ErrInsufficientBalance leaving the balance untouched.
func (r *SellerRepository) Reserve(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	if err := checkAmount("reserve", amount); err != nil {
		return err
	}
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := r.lockBalance(ctx, sellerID)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return fmt.Errorf("%w: seller %d has %s, needs %s", port.ErrInsufficientBalance, sellerID, balance, amount)
		}
		return r.move(ctx, sellerID, amount.Neg(), reason)
	})
}

// Release adds amount to the seller's balance.
func (r *SellerRepository) Release(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	if err := checkAmount("release", amount); err != nil {
		return err
	}
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := r.lockBalance(ctx, sellerID)
		if err != nil {
			return err
		}
		if !domain.FitsMoney(balance.Add(amount)) {
			return fmt.Errorf("%w: balance of seller %d would overflow", port.ErrValidation, sellerID)
		}
		return r.move(ctx, sellerID, amount, reason)
	})
}

// Adjust reserves a positive delta and releases a negative one.
func (r *SellerRepository) Adjust(ctx context.Context, sellerID int64, delta decimal.Decimal, reason domain.MovementReason) error {
	switch delta.Sign() {
	case 1:
		return r.Reserve(ctx, sellerID, delta, reason)
	case -1:
		return r.Release(ctx, sellerID, delta.Neg(), reason)
	}
	return nil
}

func (r *SellerRepository) Movements(ctx context.Context, sellerID int64, limit int) ([]domain.FundMovement, error) {
	rows, err := r.tx.conn(ctx).Query(ctx, `
        SELECT id::text, seller_id, amount, balance_after, reason, created_at
        FROM fund_movements
        WHERE seller_id = $1
        ORDER BY created_at DESC, seq DESC
        LIMIT $2`, sellerID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FundMovement, error) {
		var m domain.FundMovement
		var reason string
		err := row.Scan(&m.ID, &m.SellerID, &m.Amount, &m.BalanceAfter, &reason, &m.CreatedAt)
		m.Reason = domain.MovementReason(reason)
		return m, err
	})
}

func (r *SellerRepository) lockBalance(ctx context.Context, sellerID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.tx.conn(ctx).QueryRow(ctx, `SELECT balance FROM sellers WHERE id = $1 FOR UPDATE`, sellerID).Scan(&balance)
	if err != nil {
		return decimal.Zero, mapError(err, "seller %d", sellerID)
	}
	return balance, nil
}

// move applies a signed amount to a locked seller row and journals it.
func (r *SellerRepository) move(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	q := r.tx.conn(ctx)
	var after decimal.Decimal
	err := q.QueryRow(ctx, `UPDATE sellers SET balance = balance + $2 WHERE id = $1 RETURNING balance`, sellerID, amount).Scan(&after)
	if err != nil {
		return mapError(err, "update balance of seller %d", sellerID)
	}
	_, err = q.Exec(ctx, `
        INSERT INTO fund_movements (id, seller_id, amount, balance_after, reason)
        VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), sellerID, amount, after, string(reason))
	return err
}

// checkAmount keeps amounts within NUMERIC(14,2) so the columns never round.
func checkAmount(op string, amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return fmt.Errorf("%w: %s amount must not be negative", port.ErrValidation, op)
	case !domain.FitsMoney(amount):
		return fmt.Errorf("%w: %s amount %s does not fit a money column", port.ErrValidation, op, amount)
	}
	return nil
}

func scanSeller(row pgx.Row) (*domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.Role, &s.Balance, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
