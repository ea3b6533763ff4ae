package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/cities", h.cities)
	router.GET("/cities/:id/activities", h.activities)
	router.GET("/packages/:id", h.packageByID)
}

func (h *CatalogHandler) cities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *CatalogHandler) activities(c *gin.Context) {
	activities, err := h.service.Activities(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *CatalogHandler) packageByID(c *gin.Context) {
	pkg, err := h.service.PackageByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}
