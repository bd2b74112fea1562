package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/scrmvv/partsource/clients"
	"github.com/scrmvv/partsource/models"
	"github.com/scrmvv/partsource/repository"
)

// semanticTopK caps the candidate list requested from the ranking
// service for free-text queries.
const semanticTopK = 30

type SearchService interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
}

type searchService struct {
	offers   repository.OfferRepository
	semantic clients.SemanticClient
	logger   zerolog.Logger
}

func NewSearchService(offers repository.OfferRepository, semantic clients.SemanticClient, logger zerolog.Logger) SearchService {
	return &searchService{
		offers:   offers,
		semantic: semantic,
		logger:   logger.With().Str("service", "search").Logger(),
	}
}

func (s *searchService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	qty := max(1, req.Qty)

	offers, err := s.lookup(ctx, query, req.Sort)
	if err != nil {
		s.logger.Error().Err(err).Str("sort", req.Sort.String()).Msg("offer lookup failed")
		return nil, ErrSearchFailed
	}
	if len(offers) == 0 {
		return nil, ErrNoResults
	}

	return s.assemble(offers, qty), nil
}

// lookup routes the query to one of three shapes: substring match for
// SKU-style queries, a semantic-candidate-restricted query for
// free-text, or the same substring match as fallback when the ranking
// service yields nothing.
func (s *searchService) lookup(ctx context.Context, query string, sort models.SortKey) ([]models.Offer, error) {
	if isSKUQuery(query) {
		// catalog codes carry no natural-language semantics
		return s.offers.SearchLike(ctx, query, sort)
	}

	res := s.semantic.Search(ctx, query, semanticTopK)
	if res.Degraded || len(res.Candidates) == 0 {
		return s.offers.SearchLike(ctx, query, sort)
	}

	return s.offers.SearchByProductIDs(ctx, res.Candidates, sort)
}

// isSKUQuery classifies the query: after stripping all whitespace, a
// form containing at least one digit is treated as an SKU-style code.
func isSKUQuery(query string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, query)

	for _, r := range stripped {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// assemble shapes repository rows and, for a single-product result
// set, the allocation outcome into the response payload. Multi-product
// sets are for browsing only: no product is ever auto-picked to
// allocate against.
func (s *searchService) assemble(offers []models.Offer, qty int) *models.SearchResponse {
	resp := models.NewSearchResponse(qty)

	distinct := make(map[int64]struct{}, len(offers))
	for _, offer := range offers {
		distinct[offer.ProductID] = struct{}{}
	}
	resp.DistinctProducts = len(distinct)

	resp.Offers = make([]models.OfferView, 0, len(offers))
	for _, offer := range offers {
		resp.Offers = append(resp.Offers, offerView(offer))
	}

	if len(distinct) != 1 {
		return resp
	}

	resp.Product = &models.ProductRef{
		SKU:  offers[0].SKU,
		Name: offers[0].ProductName,
	}

	alloc := Allocate(offers, qty)
	resp.Allocation = make([]models.AllocationLineView, 0, len(alloc.Lines))
	for _, line := range alloc.Lines {
		resp.Allocation = append(resp.Allocation, lineView(line))
	}
	resp.Totals = &models.TotalsView{
		TotalNoVat:   money(alloc.TotalNoVat),
		TotalWithVat: money(alloc.TotalWithVat),
		AllocatedQty: alloc.AllocatedQty,
		MissingQty:   alloc.MissingQty,
	}
	resp.Remaining = alloc.MissingQty

	return resp
}

func offerView(offer models.Offer) models.OfferView {
	return models.OfferView{
		ProductID:    offer.ProductID,
		SKU:          offer.SKU,
		ProductName:  offer.ProductName,
		SupplierName: offer.SupplierName,
		City:         offer.City,
		Stock:        offer.Stock,
		LeadTimeDays: offer.LeadTimeDays,
		PriceNoVat:   money(offer.PriceNoVat),
		PriceWithVat: money(offer.PriceWithVat()),
	}
}

func lineView(line models.AllocationLine) models.AllocationLineView {
	return models.AllocationLineView{
		SupplierName:     line.SupplierName,
		City:             line.City,
		LeadTimeDays:     line.LeadTimeDays,
		Take:             line.Take,
		PriceNoVat:       money(line.PriceNoVat),
		PriceWithVat:     money(line.PriceWithVat),
		LineTotalNoVat:   money(line.LineTotalNoVat),
		LineTotalWithVat: money(line.LineTotalWithVat),
	}
}

// money rounds to the currency's minor unit for presentation.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
