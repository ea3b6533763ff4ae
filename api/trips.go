package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/domain"
	"github.com/voyago/tripengine/internal/lifecycle"
	"github.com/voyago/tripengine/internal/selection"
	"github.com/voyago/tripengine/internal/trips"
)

type TripHandler struct {
	service   trips.TripUseCase
	store     *selection.Store
	evaluator *lifecycle.Evaluator
}

type createTripRequest struct {
	CityID       string    `json:"city_id"`
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"duration_days"`
}

type editActivityRequest struct {
	ActivityID    string               `json:"activity_id"`
	DurationType  *domain.DurationType `json:"duration_type"`
	DurationValue *int                 `json:"duration_value"`
	Quantity      *int                 `json:"quantity"`
	UnitPrice     *int64               `json:"unit_price"`
}

type editTripRequest struct {
	StartDate    *time.Time            `json:"start_date"`
	DurationDays *int                  `json:"duration_days"`
	Activities   []editActivityRequest `json:"activities"`
}

func NewTripHandler(service trips.TripUseCase, store *selection.Store, evaluator *lifecycle.Evaluator) *TripHandler {
	return &TripHandler{service: service, store: store, evaluator: evaluator}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.PUT("/:id", h.edit)
	router.PUT("/:id/start", h.start)
	router.PUT("/:id/complete", h.complete)
	router.PUT("/:id/complete/decline", h.declineComplete)
	router.PUT("/:id/cancel", h.cancel)
	router.DELETE("/:id", h.remove)
}

func (h *TripHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// create submits the activity selection store's current draft as a new trip.
func (h *TripHandler) create(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.service.CreateFromSelection(c.Request.Context(), h.store, trips.CreateInput{
		CityID:       req.CityID,
		StartDate:    req.StartDate,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// edit rebuilds the trip's edit draft from the request and submits it.
// Activities missing from the request are removed outright; duration and
// quantity minimums are enforced here, mirroring the selection flow.
func (h *TripHandler) edit(c *gin.Context) {
	var req editTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cached, ok := h.service.Cached(c.Param("id"))
	if !ok {
		writeError(c, trips.ErrNotFound)
		return
	}

	draft := trips.NewEditDraft(*cached)
	if req.StartDate != nil {
		draft.SetStartDate(*req.StartDate)
	}
	if req.DurationDays != nil {
		draft.SetDurationDays(*req.DurationDays)
	}

	keep := make(map[string]struct{}, len(req.Activities))
	for _, a := range req.Activities {
		keep[a.ActivityID] = struct{}{}
	}
	for _, line := range draft.Lines() {
		if _, ok := keep[line.ActivityID]; !ok {
			draft.RemoveActivity(line.ActivityID)
		}
	}
	for _, a := range req.Activities {
		if a.DurationValue != nil && *a.DurationValue < 1 {
			*a.DurationValue = 1
		}
		if a.Quantity != nil && *a.Quantity < 1 {
			*a.Quantity = 1
		}
		draft.UpdateActivity(a.ActivityID, trips.ActivityEdit{
			DurationType:  a.DurationType,
			DurationValue: a.DurationValue,
			Quantity:      a.Quantity,
			UnitPrice:     a.UnitPrice,
		})
	}

	trip, err := h.service.SubmitEdit(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) start(c *gin.Context) {
	trip, err := h.service.StartTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) complete(c *gin.Context) {
	trip, err := h.service.CompleteTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// declineComplete leaves the status untouched and points the client at the
// edit flow so the trip's end date can be extended instead. The prompt is
// dismissed so it never fires again for this trip.
func (h *TripHandler) declineComplete(c *gin.Context) {
	id := c.Param("id")
	h.evaluator.Dismiss(id, lifecycle.PromptComplete)
	c.JSON(http.StatusOK, gin.H{"redirect": "/trips/" + id + "/edit"})
}

func (h *TripHandler) cancel(c *gin.Context) {
	trip, err := h.service.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) remove(c *gin.Context) {
	if err := h.service.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
