package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// campaignSelect loads campaigns with their city, owner name and keywords.
// Callers append WHERE conditions before campaignGroup.
const campaignSelect = `
        SELECT
            c.id,
            c.name,
            c.price,
            c.fund,
            c.status,
            c.radius,
            c.seller_id,
            s.username,
            c.created_at,
            c.updated_at,
            ci.id,
            ci.name,
            ci.latitude,
            ci.longitude,
            COALESCE(array_agg(k.id ORDER BY k.id) FILTER (WHERE k.id IS NOT NULL), '{}'::bigint[]),
            COALESCE(array_agg(k.name ORDER BY k.id) FILTER (WHERE k.id IS NOT NULL), '{}'::text[])
        FROM campaigns c
        JOIN cities ci ON ci.id = c.city_id
        JOIN sellers s ON s.id = c.seller_id
        LEFT JOIN campaign_keywords ck ON ck.campaign_id = c.id
        LEFT JOIN keywords k ON k.id = ck.keyword_id`

const campaignGroup = `
        GROUP BY c.id, s.id, ci.id
        ORDER BY c.id`

// CampaignRepository implements port.CampaignRepository using pgx.
type CampaignRepository struct {
	tx *Transactor
}

// NewCampaignRepository returns a repository sharing transactions with tx.
func NewCampaignRepository(tx *Transactor) *CampaignRepository {
	return &CampaignRepository{tx: tx}
}

// Insert stores the campaign and links its keywords in one transaction.
func (r *CampaignRepository) Insert(ctx context.Context, c *domain.Campaign) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := r.tx.conn(ctx)
		err := q.QueryRow(ctx, `
            INSERT INTO campaigns (name, price, fund, status, city_id, radius, seller_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id, created_at, updated_at`,
			c.Name, c.Price, c.Fund, c.Status, c.City.ID, c.Radius, c.SellerID,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return mapError(err, "insert campaign %q", c.Name)
		}
		_, err = q.Exec(ctx, `
            INSERT INTO campaign_keywords (campaign_id, keyword_id)
            SELECT $1, k FROM unnest($2::bigint[]) AS k
            ON CONFLICT DO NOTHING`, c.ID, keywordIDs(c.Keywords))
		return mapError(err, "link keywords of campaign %d", c.ID)
	})
}

// Update persists the mutable fields and reconciles the keyword links:
// links outside the desired set are deleted, missing ones inserted.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := r.tx.conn(ctx)
		err := q.QueryRow(ctx, `
            UPDATE campaigns
            SET name = $2, price = $3, fund = $4, status = $5, city_id = $6, radius = $7, updated_at = now()
            WHERE id = $1
            RETURNING updated_at`,
			c.ID, c.Name, c.Price, c.Fund, c.Status, c.City.ID, c.Radius,
		).Scan(&c.UpdatedAt)
		if err != nil {
			return mapError(err, "update campaign %d", c.ID)
		}
		_, err = q.Exec(ctx, `
            WITH removed AS (
                DELETE FROM campaign_keywords
                WHERE campaign_id = $1 AND NOT (keyword_id = ANY($2::bigint[]))
            )
            INSERT INTO campaign_keywords (campaign_id, keyword_id)
            SELECT $1, k FROM unnest($2::bigint[]) AS k
            ON CONFLICT DO NOTHING`, c.ID, keywordIDs(c.Keywords))
		return mapError(err, "reconcile keywords of campaign %d", c.ID)
	})
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	tag, err := r.tx.conn(ctx).Exec(ctx,
		`UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
	}
	return nil
}

// Delete removes the campaign; keyword links cascade.
func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.tx.conn(ctx).Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
	}
	return nil
}

func (r *CampaignRepository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return r.one(ctx, fmt.Sprintf("campaign %d", id), "c.id = $1", id)
}

// GetForUpdate locks the campaign row before loading it. The aggregate
// query cannot carry FOR UPDATE itself, so the lock is taken separately.
func (r *CampaignRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Campaign, error) {
	var locked int64
	err := r.tx.conn(ctx).QueryRow(ctx, `SELECT id FROM campaigns WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		return nil, mapError(err, "campaign %d", id)
	}
	return r.Get(ctx, id)
}

func (r *CampaignRepository) GetByName(ctx context.Context, name string) (*domain.Campaign, error) {
	return r.one(ctx, fmt.Sprintf("campaign %q", name), "c.name = $1", name)
}

func (r *CampaignRepository) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var taken bool
	err := r.tx.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM campaigns WHERE name = $1 AND id <> $2)`, name, exceptID,
	).Scan(&taken)
	return taken, err
}

func (r *CampaignRepository) Find(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	var (
		conds []string
		args  []any
	)
	if f.SellerID != 0 {
		args = append(args, f.SellerID)
		conds = append(conds, fmt.Sprintf("c.seller_id = $%d", len(args)))
	}
	if f.CityName != "" {
		args = append(args, f.CityName)
		conds = append(conds, fmt.Sprintf("ci.name = $%d", len(args)))
	}
	if f.Name != "" {
		args = append(args, f.Name)
		conds = append(conds, fmt.Sprintf("c.name = $%d", len(args)))
	}
	return r.query(ctx, conds, args...)
}

// FindActive returns active campaigns, narrowed to those carrying at least
// one of keywords when it is not empty.
func (r *CampaignRepository) FindActive(ctx context.Context, keywords []string) ([]domain.Campaign, error) {
	conds := []string{"c.status"}
	var args []any
	if len(keywords) > 0 {
		args = append(args, keywords)
		conds = append(conds, `EXISTS (
            SELECT 1 FROM campaign_keywords fk
            JOIN keywords kw ON kw.id = fk.keyword_id
            WHERE fk.campaign_id = c.id AND kw.name = ANY($1::text[]))`)
	}
	return r.query(ctx, conds, args...)
}

func (r *CampaignRepository) one(ctx context.Context, what, cond string, arg any) (*domain.Campaign, error) {
	found, err := r.query(ctx, []string{cond}, arg)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", port.ErrNotFound, what)
	}
	return &found[0], nil
}

func (r *CampaignRepository) query(ctx context.Context, conds []string, args ...any) ([]domain.Campaign, error) {
	query := campaignSelect
	if len(conds) > 0 {
		query += "\n        WHERE " + strings.Join(conds, " AND ")
	}
	query += campaignGroup

	rows, err := r.tx.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var (
		c     domain.Campaign
		ids   []int64
		names []string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Price,
		&c.Fund,
		&c.Status,
		&c.Radius,
		&c.SellerID,
		&c.SellerName,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.City.ID,
		&c.City.Name,
		&c.City.Latitude,
		&c.City.Longitude,
		&ids,
		&names,
	)
	if err != nil {
		return c, err
	}
	c.Keywords = make([]domain.Keyword, len(ids))
	for i := range ids {
		c.Keywords[i] = domain.Keyword{ID: ids[i], Name: names[i]}
	}
	return c, nil
}

func keywordIDs(keywords []domain.Keyword) []int64 {
	ids := make([]int64, 0, len(keywords))
	for _, k := range keywords {
		ids = append(ids, k.ID)
	}
	return ids
}
