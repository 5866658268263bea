package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `ean, title, description, brand, price, discount_price, discount_pct,
	availability, rating_avg, rating_count, image_url, url, created_at, updated_at`

type PostgresProductStore struct {
	pool *pgxpool.Pool
}

func NewPostgresProductStore(pool *pgxpool.Pool) *PostgresProductStore {
	return &PostgresProductStore{pool: pool}
}

func (s *PostgresProductStore) List(ctx context.Context, filter ProductFilter) ([]ProductRecord, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Search != "" {
		conditions = append(conditions, "title ILIKE "+arg("%"+filter.Search+"%"))
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, "COALESCE(NULLIF(discount_price, 0), price) >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, "COALESCE(NULLIF(discount_price, 0), price) <= "+arg(filter.MaxPrice))
	}
	if filter.MinRating > 0 {
		conditions = append(conditions, "rating_avg >= "+arg(filter.MinRating))
	}
	if filter.InStockOnly {
		conditions = append(conditions, "availability = 'in_stock'")
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *PostgresProductStore) ByEANs(ctx context.Context, eans []string) ([]ProductRecord, error) {
	if len(eans) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products WHERE ean = ANY($1)", eans)
	if err != nil {
		return nil, WrapRepoErr("failed to select products by ean list", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *PostgresProductStore) InsertBatch(ctx context.Context, records []ProductRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			r.EAN, r.Title, r.Description, r.Brand, r.Price, r.DiscountPrice, r.DiscountPct,
			r.Availability, r.RatingAvg, r.RatingCount, r.ImageURL, r.URL, r.CreatedAt, r.UpdatedAt)
	}
	if err := s.sendBatch(ctx, batch); err != nil {
		return WrapRepoErr("failed to insert product batch", err)
	}
	return nil
}

func (s *PostgresProductStore) UpsertBatch(ctx context.Context, records []ProductRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		// created_at is deliberately absent from the SET list so the
		// original creation timestamp survives every upsert.
		batch.Queue(`INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (ean) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				brand = EXCLUDED.brand,
				price = EXCLUDED.price,
				discount_price = EXCLUDED.discount_price,
				discount_pct = EXCLUDED.discount_pct,
				availability = EXCLUDED.availability,
				rating_avg = EXCLUDED.rating_avg,
				rating_count = EXCLUDED.rating_count,
				image_url = EXCLUDED.image_url,
				url = EXCLUDED.url,
				updated_at = EXCLUDED.updated_at`,
			r.EAN, r.Title, r.Description, r.Brand, r.Price, r.DiscountPrice, r.DiscountPct,
			r.Availability, r.RatingAvg, r.RatingCount, r.ImageURL, r.URL, r.CreatedAt, r.UpdatedAt)
	}
	if err := s.sendBatch(ctx, batch); err != nil {
		return WrapRepoErr("failed to upsert product batch", err)
	}
	return nil
}

func (s *PostgresProductStore) Update(ctx context.Context, r ProductRecord) error {
	tag, err := s.pool.Exec(ctx, `UPDATE products SET
			title = $2, description = $3, brand = $4, price = $5, discount_price = $6,
			discount_pct = $7, availability = $8, rating_avg = $9, rating_count = $10,
			image_url = $11, url = $12, updated_at = $13
		WHERE ean = $1`,
		r.EAN, r.Title, r.Description, r.Brand, r.Price, r.DiscountPrice,
		r.DiscountPct, r.Availability, r.RatingAvg, r.RatingCount,
		r.ImageURL, r.URL, r.UpdatedAt)
	if err != nil {
		return WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return WrapRepoErr("product not found", nil, KindNotFound)
	}
	return nil
}

func (s *PostgresProductStore) Delete(ctx context.Context, ean string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM products WHERE ean = $1", ean); err != nil {
		return WrapRepoErr("failed to delete product", err)
	}
	return nil
}

func (s *PostgresProductStore) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]ProductRecord, error) {
	var records []ProductRecord
	for rows.Next() {
		var r ProductRecord
		if err := rows.Scan(&r.EAN, &r.Title, &r.Description, &r.Brand, &r.Price,
			&r.DiscountPrice, &r.DiscountPct, &r.Availability, &r.RatingAvg,
			&r.RatingCount, &r.ImageURL, &r.URL, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, WrapRepoErr("failed to scan product row", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepoErr("product row iteration failed", err)
	}
	return records, nil
}

type PostgresDealStore struct {
	pool *pgxpool.Pool
}

func NewPostgresDealStore(pool *pgxpool.Pool) *PostgresDealStore {
	return &PostgresDealStore{pool: pool}
}

func (s *PostgresDealStore) ActiveDeals(ctx context.Context) ([]DealRecord, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, ean, discount_pct, active, started_at, ended_at FROM deals WHERE active")
	if err != nil {
		return nil, WrapRepoErr("failed to list active deals", err)
	}
	defer rows.Close()

	var deals []DealRecord
	for rows.Next() {
		var d DealRecord
		if err := rows.Scan(&d.ID, &d.EAN, &d.DiscountPct, &d.Active, &d.StartedAt, &d.EndedAt); err != nil {
			return nil, WrapRepoErr("failed to scan deal row", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepoErr("deal row iteration failed", err)
	}
	return deals, nil
}

func (s *PostgresDealStore) InsertBatch(ctx context.Context, deals []DealRecord) error {
	if len(deals) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range deals {
		batch.Queue(`INSERT INTO deals (id, ean, discount_pct, active, started_at)
			VALUES ($1, $2, $3, $4, $5)`,
			d.ID, d.EAN, d.DiscountPct, d.Active, d.StartedAt)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return WrapRepoErr("failed to insert deal batch", err)
		}
	}
	return nil
}

func (s *PostgresDealStore) DeactivateExcept(ctx context.Context, keep []string, endedAt time.Time) (int, error) {
	var (
		tag pgconn.CommandTag
		err error
	)
	if len(keep) == 0 {
		// An empty qualifying set ends every active deal.
		tag, err = s.pool.Exec(ctx,
			"UPDATE deals SET active = false, ended_at = $1 WHERE active", endedAt)
	} else {
		tag, err = s.pool.Exec(ctx,
			"UPDATE deals SET active = false, ended_at = $1 WHERE active AND NOT (ean = ANY($2))",
			endedAt, keep)
	}
	if err != nil {
		return 0, WrapRepoErr("failed to deactivate deals", err)
	}
	return int(tag.RowsAffected()), nil
}

type PostgresJobStore struct {
	pool *pgxpool.Pool
}

func NewPostgresJobStore(pool *pgxpool.Pool) *PostgresJobStore {
	return &PostgresJobStore{pool: pool}
}

func (s *PostgresJobStore) Create(ctx context.Context, job SyncJobRecord) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO sync_jobs
			(id, type, status, started_at, completed_at, items_processed, items_failed, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.Type, job.Status, job.StartedAt, job.CompletedAt,
		job.ItemsProcessed, job.ItemsFailed, job.Error)
	if err != nil {
		return WrapRepoErr("failed to create sync job", err)
	}
	return nil
}

func (s *PostgresJobStore) Update(ctx context.Context, job SyncJobRecord) error {
	_, err := s.pool.Exec(ctx, `UPDATE sync_jobs SET
			status = $2, completed_at = $3, items_processed = $4, items_failed = $5, error = $6
		WHERE id = $1`,
		job.ID, job.Status, job.CompletedAt, job.ItemsProcessed, job.ItemsFailed, job.Error)
	if err != nil {
		return WrapRepoErr("failed to update sync job", err)
	}
	return nil
}

func (s *PostgresJobStore) ByID(ctx context.Context, id uuid.UUID) (*SyncJobRecord, error) {
	var job SyncJobRecord
	err := s.pool.QueryRow(ctx, `SELECT id, type, status, started_at, completed_at,
			items_processed, items_failed, error
		FROM sync_jobs WHERE id = $1`, id).
		Scan(&job.ID, &job.Type, &job.Status, &job.StartedAt, &job.CompletedAt,
			&job.ItemsProcessed, &job.ItemsFailed, &job.Error)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, WrapRepoErr("sync job not found", err, KindNotFound)
		}
		return nil, WrapRepoErr("failed to get sync job", err)
	}
	return &job, nil
}

func (s *PostgresJobStore) Recent(ctx context.Context, limit int) ([]SyncJobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `SELECT id, type, status, started_at, completed_at,
			items_processed, items_failed, error
		FROM sync_jobs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, WrapRepoErr("failed to list sync jobs", err)
	}
	defer rows.Close()

	var jobs []SyncJobRecord
	for rows.Next() {
		var job SyncJobRecord
		if err := rows.Scan(&job.ID, &job.Type, &job.Status, &job.StartedAt, &job.CompletedAt,
			&job.ItemsProcessed, &job.ItemsFailed, &job.Error); err != nil {
			return nil, WrapRepoErr("failed to scan sync job row", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepoErr("sync job row iteration failed", err)
	}
	return jobs, nil
}

type PostgresClickStore struct {
	pool *pgxpool.Pool
}

func NewPostgresClickStore(pool *pgxpool.Pool) *PostgresClickStore {
	return &PostgresClickStore{pool: pool}
}

func (s *PostgresClickStore) Insert(ctx context.Context, click ClickRecord) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO affiliate_clicks (id, ean, article_id, referrer, clicked_at)
		VALUES ($1, $2, $3, $4, $5)`,
		click.ID, click.EAN, click.ArticleID, click.Referrer, click.ClickedAt)
	if err != nil {
		return WrapRepoErr("failed to insert affiliate click", err)
	}
	return nil
}
