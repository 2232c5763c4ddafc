package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "wondex/internal/errors"
	"wondex/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// ListAssetsQuery represents the query parameters for listing assets.
type ListAssetsQuery struct {
	Type string `form:"type" binding:"omitempty,asset_kind"`
}

// tickerURI binds the :ticker path parameter.
type tickerURI struct {
	Ticker string `uri:"ticker" binding:"required,ticker"`
}

// ListAssets handles GET /api/v1/assets.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var query ListAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be ETF, STOCK, or ALL"))
		return
	}

	list, err := h.assetService.ListAssets(c.Request.Context(), query.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	markDegraded(c, list.Degraded)
	c.JSON(http.StatusOK, gin.H{"assets": list.Assets})
}

// GetAsset handles GET /api/v1/assets/:ticker.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker"))
		return
	}

	detail, err := h.assetService.GetAssetDetail(c.Request.Context(), uri.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	markDegraded(c, detail.Degraded)
	c.JSON(http.StatusOK, gin.H{
		"asset":  detail.Asset,
		"detail": detail.Detail,
	})
}

// GetPriceHistory handles GET /api/v1/assets/:ticker/price-history.
func (h *AssetHandler) GetPriceHistory(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker"))
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 1 and 365"))
			return
		}
		days = parsed
	}

	history, err := h.assetService.GetPriceHistory(c.Request.Context(), uri.Ticker, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	markDegraded(c, history.Degraded)
	c.JSON(http.StatusOK, gin.H{"priceHistory": history.Points})
}

// GetHoldings handles GET /api/v1/assets/:ticker/holdings.
func (h *AssetHandler) GetHoldings(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker"))
		return
	}

	holdings, err := h.assetService.GetHoldings(c.Request.Context(), uri.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// GetDividend handles GET /api/v1/dividend/:ticker.
func (h *AssetHandler) GetDividend(c *gin.Context) {
	var uri tickerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker"))
		return
	}

	info, err := h.assetService.GetDividend(c.Request.Context(), uri.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Search handles GET /api/v1/search.
func (h *AssetHandler) Search(c *gin.Context) {
	result, err := h.assetService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	source := "db"
	if result.Degraded {
		source = "fallback"
	}
	c.JSON(http.StatusOK, gin.H{
		"results": result.Hits,
		"source":  source,
	})
}
