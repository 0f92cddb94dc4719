package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cashbook-app/cashbook/internal/apperrors"
	"github.com/cashbook-app/cashbook/internal/core/domain"
	"github.com/cashbook-app/cashbook/internal/models"
	"github.com/cashbook-app/cashbook/internal/utils/mapping"
)

const priceColumns = `price_uid, commodity_uid, currency_uid, date, source, price_type, value_num, value_denom, created_at, last_updated_at`

// SQLitePriceRepository implements the price repository facade using SQLite.
type SQLitePriceRepository struct {
	BaseRepository
}

// NewSQLitePriceRepository creates a new price repository.
func NewSQLitePriceRepository(db *sql.DB) *SQLitePriceRepository {
	return &SQLitePriceRepository{BaseRepository: NewBaseRepository(db)}
}

func scanPrice(row interface{ Scan(dest ...any) error }) (models.Price, error) {
	var m models.Price
	err := row.Scan(
		&m.PriceUID, &m.CommodityUID, &m.CurrencyUID, &m.Date, &m.Source,
		&m.PriceType, &m.ValueNum, &m.ValueDenom, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

// FindPriceByUID retrieves a price row by UID.
func (r *SQLitePriceRepository) FindPriceByUID(ctx context.Context, priceUID string) (*domain.Price, error) {
	query := fmt.Sprintf(`SELECT %s FROM prices WHERE price_uid = ?`, priceColumns)
	m, err := scanPrice(r.DB.QueryRowContext(ctx, query, priceUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "price")
		}
		return nil, fmt.Errorf("failed to find price %s: %w", priceUID, err)
	}
	d := mapping.ToDomainPrice(m)
	return &d, nil
}

// FindLatestPrice retrieves the most recent price between the two commodities,
// searching both storage orderings. The returned price keeps its stored
// orientation; callers invert when needed.
func (r *SQLitePriceRepository) FindLatestPrice(ctx context.Context, commodityUID, currencyUID string) (*domain.Price, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM prices
		WHERE (commodity_uid = ? AND currency_uid = ?)
		   OR (commodity_uid = ? AND currency_uid = ?)
		ORDER BY date DESC, last_updated_at DESC
		LIMIT 1`, priceColumns)
	m, err := scanPrice(r.DB.QueryRowContext(ctx, query, commodityUID, currencyUID, currencyUID, commodityUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mapSQLiteError(err, "price")
		}
		return nil, fmt.Errorf("failed to find latest price for pair (%s, %s): %w", commodityUID, currencyUID, err)
	}
	d := mapping.ToDomainPrice(m)
	return &d, nil
}

// ListPricesForCommodity lists the price time series quoting the commodity,
// newest first.
func (r *SQLitePriceRepository) ListPricesForCommodity(ctx context.Context, commodityUID string) ([]domain.Price, error) {
	query := fmt.Sprintf(`SELECT %s FROM prices WHERE commodity_uid = ? ORDER BY date DESC`, priceColumns)
	rows, err := r.DB.QueryContext(ctx, query, commodityUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for commodity %s: %w", commodityUID, err)
	}
	defer rows.Close()

	var prices []domain.Price
	for rows.Next() {
		m, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, mapping.ToDomainPrice(m))
	}
	return prices, rows.Err()
}

// UpsertPrice replaces any existing price for the same unordered commodity
// pair and date, then inserts the new row, in one atomic unit.
func (r *SQLitePriceRepository) UpsertPrice(ctx context.Context, price domain.Price) error {
	m := mapping.ToModelPrice(price)
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM prices
			WHERE ((commodity_uid = ? AND currency_uid = ?)
			    OR (commodity_uid = ? AND currency_uid = ?))
			  AND date = ?`,
			m.CommodityUID, m.CurrencyUID, m.CurrencyUID, m.CommodityUID, m.Date)
		if err != nil {
			return fmt.Errorf("failed to replace price for pair (%s, %s): %w", m.CommodityUID, m.CurrencyUID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO prices (price_uid, commodity_uid, currency_uid, date, source, price_type, value_num, value_denom, created_at, last_updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.PriceUID, m.CommodityUID, m.CurrencyUID, m.Date, m.Source,
			m.PriceType, m.ValueNum, m.ValueDenom, m.CreatedAt, m.LastUpdatedAt)
		if err != nil {
			return mapSQLiteError(err, "price")
		}
		return nil
	})
}

// DeletePrice removes a price row by UID.
func (r *SQLitePriceRepository) DeletePrice(ctx context.Context, priceUID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM prices WHERE price_uid = ?`, priceUID)
	if err != nil {
		return fmt.Errorf("failed to delete price %s: %w", priceUID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("price not found")
	}
	return nil
}
