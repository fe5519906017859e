package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadsim/internal/api/models"
	"loadsim/internal/catalog"
)

// CatalogHandler handles catalog validation requests.
type CatalogHandler struct{}

// NewCatalogHandler returns a CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ValidateCatalog handles GET /api/v1/catalog/validate.
func (h *CatalogHandler) ValidateCatalog(c *gin.Context) {
	path := c.Query("catalog_file")
	if path == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: "catalog_file query parameter is required"},
		})
		return
	}

	uc, err := catalog.LoadCSV(path)
	if err != nil {
		c.JSON(http.StatusOK, models.ValidateResponse{Valid: false, Errors: []string{err.Error()}})
		return
	}

	total := 0
	for _, u := range uc.Users {
		total += len(u.Appliances)
	}
	c.JSON(http.StatusOK, models.ValidateResponse{Valid: true, TotalUsers: len(uc.Users), TotalAppliances: total})
}
