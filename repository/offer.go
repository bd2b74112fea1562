package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scrmvv/partsource/db"
	"github.com/scrmvv/partsource/models"
)

// OfferRepository is the read-only query surface over the catalog:
// offers joined with product and supplier metadata.
type OfferRepository interface {
	SearchLike(ctx context.Context, term string, sort models.SortKey) ([]models.Offer, error)
	SearchByProductIDs(ctx context.Context, ids []int64, sort models.SortKey) ([]models.Offer, error)
}

type offerRepository struct {
	conn db.DBTX
}

func NewOfferRepository(conn db.DBTX) OfferRepository {
	return &offerRepository{conn: conn}
}

const offerSelect = `
	SELECT o.product_id, p.sku, p.name, s.name, s.city,
	       o.stock, o.lead_time_days, o.price_no_vat, o.vat_rate
	FROM offers o
	JOIN products p ON o.product_id = p.id
	LEFT JOIN suppliers s ON o.supplier_id = s.id`

// sortColumn resolves the sort key onto a column reference. The switch
// is closed over the SortKey enum; user input never reaches the query
// text.
func sortColumn(sort models.SortKey) string {
	switch sort {
	case models.SortByLeadTime:
		return "o.lead_time_days"
	default:
		return "o.price_no_vat"
	}
}

func (r *offerRepository) SearchLike(ctx context.Context, term string, sort models.SortKey) ([]models.Offer, error) {
	sql := fmt.Sprintf(`%s
	WHERE p.sku ILIKE $1 OR p.name ILIKE $1
	ORDER BY %s ASC`, offerSelect, sortColumn(sort))

	rows, err := r.conn.Query(ctx, sql, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("substring offer search: %w", err)
	}
	return scanOffers(rows)
}

func (r *offerRepository) SearchByProductIDs(ctx context.Context, ids []int64, sort models.SortKey) ([]models.Offer, error) {
	sql := fmt.Sprintf(`%s
	WHERE p.id = ANY($1)
	ORDER BY %s ASC`, offerSelect, sortColumn(sort))

	rows, err := r.conn.Query(ctx, sql, ids)
	if err != nil {
		return nil, fmt.Errorf("offer search by product ids: %w", err)
	}
	return scanOffers(rows)
}

func scanOffers(rows pgx.Rows) ([]models.Offer, error) {
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var (
			offer        models.Offer
			supplierName pgtype.Text
			city         pgtype.Text
			priceNoVat   pgtype.Numeric
			vatRate      pgtype.Numeric
		)

		err := rows.Scan(
			&offer.ProductID, &offer.SKU, &offer.ProductName,
			&supplierName, &city,
			&offer.Stock, &offer.LeadTimeDays, &priceNoVat, &vatRate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan offer row: %w", err)
		}

		offer.SupplierName = supplierName.String
		offer.City = city.String

		offer.PriceNoVat, err = NumericToDecimal(priceNoVat)
		if err != nil {
			return nil, fmt.Errorf("convert price: %w", err)
		}
		offer.VatRate, err = NumericToDecimal(vatRate)
		if err != nil {
			return nil, fmt.Errorf("convert vat rate: %w", err)
		}

		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
