package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/catalog"
	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/selection"
)

type SelectionHandler struct {
	store   *selection.Store
	catalog catalog.CatalogUseCase
}

type setCityRequest struct {
	CityID string `json:"city_id"`
}

type toggleRequest struct {
	ActivityID string `json:"activity_id"`
}

type updateSelectionRequest struct {
	DurationType  *domain.DurationType `json:"duration_type"`
	DurationValue *int                 `json:"duration_value"`
	Quantity      *int                 `json:"quantity"`
}

type selectionItemResponse struct {
	ActivityID    string              `json:"activity_id"`
	DurationType  domain.DurationType `json:"duration_type"`
	DurationValue int                 `json:"duration_value"`
	Quantity      int                 `json:"quantity"`
	Price         int64               `json:"price"`
}

type selectionResponse struct {
	Selections []selectionItemResponse `json:"selections"`
	TotalPrice int64                   `json:"total_price"`
}

func NewSelectionHandler(store *selection.Store, catalogSvc catalog.CatalogUseCase) *SelectionHandler {
	return &SelectionHandler{store: store, catalog: catalogSvc}
}

func (h *SelectionHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.get)
	router.PUT("/activities", h.setCity)
	router.POST("/toggle", h.toggle)
	router.PATCH("/:activityID", h.update)
}

// setCity loads the chosen city's activities into the store, dropping any
// selections made for the previous city.
func (h *SelectionHandler) setCity(c *gin.Context) {
	var req setCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activities, err := h.catalog.Activities(c.Request.Context(), req.CityID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.store.SetActivities(activities)
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (h *SelectionHandler) toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.Toggle(req.ActivityID)
	c.JSON(http.StatusOK, h.snapshot())
}

// update merges partial fields into a selection. The store does not clamp,
// so minimums are enforced here before the values go in.
func (h *SelectionHandler) update(c *gin.Context) {
	var req updateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.DurationValue != nil && *req.DurationValue < 1 {
		*req.DurationValue = 1
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		*req.Quantity = 1
	}

	h.store.Update(c.Param("activityID"), selection.UpdateFields{
		DurationType:  req.DurationType,
		DurationValue: req.DurationValue,
		Quantity:      req.Quantity,
	})
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *SelectionHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *SelectionHandler) snapshot() selectionResponse {
	selections := h.store.Selected()
	items := make([]selectionItemResponse, 0, len(selections))
	for _, sel := range selections {
		items = append(items, selectionItemResponse{
			ActivityID:    sel.ActivityID,
			DurationType:  sel.DurationType,
			DurationValue: sel.DurationValue,
			Quantity:      sel.Quantity,
			Price:         h.store.PriceOf(sel.ActivityID),
		})
	}
	return selectionResponse{Selections: items, TotalPrice: h.store.TotalPrice()}
}
