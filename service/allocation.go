package service

import (
	"github.com/shopspring/decimal"

	"github.com/scrmvv/partsource/models"
)

// Allocate greedily spreads the requested quantity across the given
// offers in order, taking min(remaining, stock) from each until the
// request is filled or supply runs out. Offers without stock are
// skipped and emit no line. The caller guarantees all offers belong to
// one product and are already sorted.
//
// Monetary sums stay exact decimals; rounding happens only when the
// result is projected for display.
func Allocate(offers []models.Offer, requested int) models.AllocationResult {
	result := models.AllocationResult{
		Lines:        make([]models.AllocationLine, 0, len(offers)),
		TotalNoVat:   decimal.Zero,
		TotalWithVat: decimal.Zero,
	}

	remaining := requested
	for _, offer := range offers {
		if remaining <= 0 {
			break
		}
		if offer.Stock <= 0 {
			continue
		}

		take := min(remaining, offer.Stock)
		qty := decimal.NewFromInt(int64(take))

		priceWithVat := offer.PriceWithVat()
		lineNoVat := offer.PriceNoVat.Mul(qty)
		lineWithVat := priceWithVat.Mul(qty)

		result.Lines = append(result.Lines, models.AllocationLine{
			SupplierName:     offer.SupplierName,
			City:             offer.City,
			LeadTimeDays:     offer.LeadTimeDays,
			Take:             take,
			PriceNoVat:       offer.PriceNoVat,
			PriceWithVat:     priceWithVat,
			LineTotalNoVat:   lineNoVat,
			LineTotalWithVat: lineWithVat,
		})

		result.TotalNoVat = result.TotalNoVat.Add(lineNoVat)
		result.TotalWithVat = result.TotalWithVat.Add(lineWithVat)
		remaining -= take
	}

	result.AllocatedQty = requested - remaining
	result.MissingQty = max(0, remaining)

	return result
}
