package api

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogController is the cache surface exposed for operations.
type CatalogController interface {
	Status() catalog.Status
	Refresh(ctx context.Context) error
}

type CatalogHandler struct {
	catalog CatalogController
}

func NewCatalogHandler(c CatalogController) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GetStatus godoc
// @Summary Catalog cache state
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.Status
// @Router /catalog/status [get]
func (h *CatalogHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Status())
}

// Refresh godoc
// @Summary Force a catalog reload
// @Description Reloads regardless of the staleness window. A reload that falls back still returns 200; check source in the body.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} catalog.Status
// @Failure 504 {object} gin.H "Request ended before the load finished"
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusGatewayTimeout, "Catalog reload did not finish: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.catalog.Status())
}
