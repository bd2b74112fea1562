package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/scrmvv/partsource/models"
)

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, models.SortByPrice, models.ParseSortKey("price"))
	assert.Equal(t, models.SortByLeadTime, models.ParseSortKey("lead_time"))
	assert.Equal(t, models.SortByPrice, models.ParseSortKey(""))
	assert.Equal(t, models.SortByPrice, models.ParseSortKey("weight"))
}

func TestOfferPriceWithVat(t *testing.T) {
	offer := models.Offer{
		PriceNoVat: decimal.NewFromFloat(100),
		VatRate:    decimal.NewFromInt(20),
	}
	assert.True(t, offer.PriceWithVat().Equal(decimal.NewFromInt(120)),
		"got %s", offer.PriceWithVat())

	zeroVat := models.Offer{
		PriceNoVat: decimal.NewFromFloat(9.99),
		VatRate:    decimal.Zero,
	}
	assert.True(t, zeroVat.PriceWithVat().Equal(decimal.NewFromFloat(9.99)))
}

func TestNewSearchResponse(t *testing.T) {
	resp := models.NewSearchResponse(4)

	assert.Equal(t, 4, resp.RequestedQty)
	assert.Equal(t, 4, resp.Remaining)
	assert.NotNil(t, resp.Allocation)
	assert.NotNil(t, resp.Offers)
	assert.Nil(t, resp.Product)
	assert.Nil(t, resp.Totals)
	assert.Nil(t, resp.Error)
}
