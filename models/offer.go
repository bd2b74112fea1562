package models

import (
	"github.com/shopspring/decimal"
)

// Offer is one supplier's priced, stocked listing of one product,
// joined with product and supplier metadata.
type Offer struct {
	ProductID    int64
	SKU          string
	ProductName  string
	SupplierName string
	City         string
	Stock        int
	LeadTimeDays int
	PriceNoVat   decimal.Decimal
	VatRate      decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// PriceWithVat derives the VAT-inclusive unit price:
// price_no_vat * (1 + vat_rate/100).
func (o Offer) PriceWithVat() decimal.Decimal {
	return o.PriceNoVat.Mul(hundred.Add(o.VatRate)).Div(hundred)
}

// AllocationLine is one offer's contribution to fulfilling a request.
type AllocationLine struct {
	SupplierName     string
	City             string
	LeadTimeDays     int
	Take             int
	PriceNoVat       decimal.Decimal
	PriceWithVat     decimal.Decimal
	LineTotalNoVat   decimal.Decimal
	LineTotalWithVat decimal.Decimal
}

// AllocationResult is the outcome of spreading a requested quantity
// across the offers of a single product. AllocatedQty + MissingQty
// always equals the requested quantity.
type AllocationResult struct {
	Lines        []AllocationLine
	TotalNoVat   decimal.Decimal
	TotalWithVat decimal.Decimal
	AllocatedQty int
	MissingQty   int
}
