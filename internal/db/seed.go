package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"local-ads/internal/core/domain"
)

// Seed loads the reference cities and keywords into tables that are still
// empty. Tables that already hold rows are left untouched, so edits made by
// operators survive restarts.
func Seed(ctx context.Context, db *pgxpool.Pool, cities []domain.City, keywords []string) (err error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// Concurrent instances seed once.
	if _, err = tx.Exec(ctx, `LOCK TABLE cities, keywords IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return err
	}
	var hasCities, hasKeywords bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cities), EXISTS (SELECT 1 FROM keywords)`).
		Scan(&hasCities, &hasKeywords)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	if !hasCities {
		for _, c := range cities {
			batch.Queue(`INSERT INTO cities (name, latitude, longitude) VALUES ($1, $2, $3)`,
				c.Name, c.Latitude, c.Longitude)
		}
	}
	if !hasKeywords {
		for _, k := range keywords {
			batch.Queue(`INSERT INTO keywords (name) VALUES ($1) ON CONFLICT DO NOTHING`, k)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	err = tx.SendBatch(ctx, batch).Close()
	return err
}
