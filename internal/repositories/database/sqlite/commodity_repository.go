package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
	"github.com/cashbook-app/cashbook/internal/utils/mapping"
)

const commodityColumns = `commodity_uid, namespace, mnemonic, full_name, local_symbol, cusip, smallest_fraction, quote_flag, created_at, last_updated_at`

// SQLiteCommodityRepository implements the commodity repository facade using SQLite.
type SQLiteCommodityRepository struct {
	BaseRepository
}

// NewSQLiteCommodityRepository creates a new commodity repository.
func NewSQLiteCommodityRepository(db *sql.DB) *SQLiteCommodityRepository {
	return &SQLiteCommodityRepository{BaseRepository: NewBaseRepository(db)}
}

func scanCommodity(row interface{ Scan(dest ...any) error }) (models.Commodity, error) {
	var m models.Commodity
	err := row.Scan(
		&m.CommodityUID, &m.Namespace, &m.Mnemonic, &m.FullName, &m.LocalSymbol,
		&m.CUSIP, &m.SmallestFraction, &m.QuoteFlag, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

// FindCommodityByUID retrieves a commodity by its storage key.
func (r *SQLiteCommodityRepository) FindCommodityByUID(ctx context.Context, commodityUID string) (*domain.Commodity, error) {
	query := fmt.Sprintf(`SELECT %s FROM commodities WHERE commodity_uid = ?`, commodityColumns)
	m, err := scanCommodity(r.DB.QueryRowContext(ctx, query, commodityUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "commodity")
		}
		return nil, fmt.Errorf("failed to find commodity %s: %w", commodityUID, err)
	}
	d := mapping.ToDomainCommodity(m)
	return &d, nil
}

// FindCommodity retrieves a commodity by its logical identity.
func (r *SQLiteCommodityRepository) FindCommodity(ctx context.Context, namespace, mnemonic string) (*domain.Commodity, error) {
	query := fmt.Sprintf(`SELECT %s FROM commodities WHERE namespace = ? AND mnemonic = ?`, commodityColumns)
	m, err := scanCommodity(r.DB.QueryRowContext(ctx, query, namespace, mnemonic))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "commodity")
		}
		return nil, fmt.Errorf("failed to find commodity %s/%s: %w", namespace, mnemonic, err)
	}
	d := mapping.ToDomainCommodity(m)
	return &d, nil
}

// FindCurrencyByMnemonic retrieves an ISO-4217 currency by code.
func (r *SQLiteCommodityRepository) FindCurrencyByMnemonic(ctx context.Context, mnemonic string) (*domain.Commodity, error) {
	return r.FindCommodity(ctx, domain.NamespaceCurrency, mnemonic)
}

// ListCommodities lists all commodities in a namespace, ordered by mnemonic.
func (r *SQLiteCommodityRepository) ListCommodities(ctx context.Context, namespace string) ([]domain.Commodity, error) {
	query := fmt.Sprintf(`SELECT %s FROM commodities WHERE namespace = ? ORDER BY mnemonic`, commodityColumns)
	rows, err := r.DB.QueryContext(ctx, query, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list commodities: %w", err)
	}
	defer rows.Close()

	var ms []models.Commodity
	for rows.Next() {
		m, err := scanCommodity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commodity: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ds := make([]domain.Commodity, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainCommodity(m)
	}
	return ds, nil
}

// CountCommodities returns the number of stored commodities.
func (r *SQLiteCommodityRepository) CountCommodities(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM commodities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count commodities: %w", err)
	}
	return count, nil
}

// SaveCommodity upserts a commodity by UID.
func (r *SQLiteCommodityRepository) SaveCommodity(ctx context.Context, commodity domain.Commodity) error {
	m := mapping.ToModelCommodity(commodity)
	query := `
		INSERT INTO commodities (commodity_uid, namespace, mnemonic, full_name, local_symbol, cusip, smallest_fraction, quote_flag, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (commodity_uid) DO UPDATE SET
			namespace = excluded.namespace,
			mnemonic = excluded.mnemonic,
			full_name = excluded.full_name,
			local_symbol = excluded.local_symbol,
			cusip = excluded.cusip,
			smallest_fraction = excluded.smallest_fraction,
			quote_flag = excluded.quote_flag,
			last_updated_at = excluded.last_updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		m.CommodityUID, m.Namespace, m.Mnemonic, m.FullName, m.LocalSymbol,
		m.CUSIP, m.SmallestFraction, m.QuoteFlag, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return mapSQLiteError(err, "commodity")
	}
	return nil
}
