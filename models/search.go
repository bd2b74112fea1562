package models

// SortKey selects the column offers are ordered by, ascending.
type SortKey int

const (
	SortByPrice SortKey = iota
	SortByLeadTime
)

// ParseSortKey maps the inbound sort parameter onto the closed enum.
// Unknown values fall back to price.
func ParseSortKey(s string) SortKey {
	switch s {
	case "lead_time":
		return SortByLeadTime
	default:
		return SortByPrice
	}
}

func (k SortKey) String() string {
	if k == SortByLeadTime {
		return "lead_time"
	}
	return "price"
}

// SearchRequest is a normalized search call: trimmed query text,
// quantity clamped to at least 1 and a resolved sort key.
type SearchRequest struct {
	Query string
	Qty   int
	Sort  SortKey
}

// ProductRef identifies the single matched product.
type ProductRef struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// OfferView is the display-ready projection of an offer row. Monetary
// fields are rounded to 2 decimal places at projection time.
type OfferView struct {
	ProductID    int64   `json:"product_id"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"product_name"`
	SupplierName string  `json:"supplier_name"`
	City         string  `json:"city"`
	Stock        int     `json:"stock"`
	LeadTimeDays int     `json:"lead_time_days"`
	PriceNoVat   float64 `json:"price_no_vat"`
	PriceWithVat float64 `json:"price_with_vat"`
}

// AllocationLineView is the display-ready projection of an allocation line.
type AllocationLineView struct {
	SupplierName     string  `json:"supplier_name"`
	City             string  `json:"city"`
	LeadTimeDays     int     `json:"lead_time_days"`
	Take             int     `json:"take"`
	PriceNoVat       float64 `json:"price_no_vat"`
	PriceWithVat     float64 `json:"price_with_vat"`
	LineTotalNoVat   float64 `json:"line_total_no_vat"`
	LineTotalWithVat float64 `json:"line_total_with_vat"`
}

// TotalsView aggregates the emitted allocation lines.
type TotalsView struct {
	TotalNoVat   float64 `json:"total_no_vat"`
	TotalWithVat float64 `json:"total_with_vat"`
	AllocatedQty int     `json:"allocated_qty"`
	MissingQty   int     `json:"missing_qty"`
}

// SearchResponse is the full response payload. Product and Totals are
// populated only when exactly one distinct product matched; Offers and
// Allocation are always arrays, never null.
type SearchResponse struct {
	Product          *ProductRef          `json:"product"`
	RequestedQty     int                  `json:"requested_qty"`
	Allocation       []AllocationLineView `json:"allocation"`
	Totals           *TotalsView          `json:"totals"`
	Offers           []OfferView          `json:"offers"`
	Remaining        int                  `json:"remaining"`
	DistinctProducts int                  `json:"distinct_products"`
	Error            *string              `json:"error"`
}

// NewSearchResponse returns the empty response skeleton for a request
// of the given quantity.
func NewSearchResponse(qty int) *SearchResponse {
	return &SearchResponse{
		RequestedQty: qty,
		Allocation:   []AllocationLineView{},
		Offers:       []OfferView{},
		Remaining:    qty,
	}
}

// SetError records a user-facing error message on the response.
func (r *SearchResponse) SetError(msg string) {
	r.Error = &msg
}
