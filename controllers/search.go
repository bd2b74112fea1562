package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scrmvv/partsource/models"
	"github.com/scrmvv/partsource/requests"
	"github.com/scrmvv/partsource/service"
)

type searchController struct {
	search service.SearchService
	logger zerolog.Logger
}

func NewSearchController(search service.SearchService, logger zerolog.Logger) Controller {
	return &searchController{
		search: search,
		logger: logger.With().Str("controller", "search").Logger(),
	}
}

func (c *searchController) Register(r *gin.Engine) {
	group := r.Group("/api")
	group.GET("/search", c.Search)
}

func (c *searchController) Search(ctx *gin.Context) {
	params := requests.Search{}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		resp := models.NewSearchResponse(1)
		resp.SetError("invalid query parameters")
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	qty := params.Qty
	if qty < 1 {
		qty = 1
	}

	req := models.SearchRequest{
		Query: strings.TrimSpace(params.Q),
		Qty:   qty,
		Sort:  models.ParseSortKey(params.Sort),
	}

	resp, err := c.search.Search(ctx, req)
	if err != nil {
		c.respondError(ctx, qty, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// respondError maps the error taxonomy onto the response contract:
// expected outcomes keep HTTP success with a user-facing message,
// store failures become a generic 500 with no internal detail.
func (c *searchController) respondError(ctx *gin.Context, qty int, err error) {
	resp := models.NewSearchResponse(qty)

	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		resp.SetError("empty query")
		ctx.JSON(http.StatusOK, resp)
	case errors.Is(err, service.ErrNoResults):
		resp.SetError("nothing found")
		ctx.JSON(http.StatusOK, resp)
	default:
		c.logger.Error().Err(err).Msg("search request failed")
		resp.SetError("search failed")
		ctx.JSON(http.StatusInternalServerError, resp)
	}
}
