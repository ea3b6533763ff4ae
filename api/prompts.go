package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/lifecycle"
	"github.com/voyago/tripengine/internal/trips"
)

type PromptHandler struct {
	service   trips.TripUseCase
	evaluator *lifecycle.Evaluator
}

type dismissPromptRequest struct {
	TripID string               `json:"trip_id"`
	Kind   lifecycle.PromptKind `json:"kind"`
}

func NewPromptHandler(service trips.TripUseCase, evaluator *lifecycle.Evaluator) *PromptHandler {
	return &PromptHandler{service: service, evaluator: evaluator}
}

func (h *PromptHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.next)
	router.POST("/dismiss", h.dismiss)
}

// next returns the single due prompt for the current trip list, or 204 when
// nothing is due. Each prompt is returned at most once.
func (h *PromptHandler) next(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	prompt := h.evaluator.Scan(list)
	if prompt == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) dismiss(c *gin.Context) {
	var req dismissPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.evaluator.Dismiss(req.TripID, req.Kind)
	c.Status(http.StatusNoContent)
}
