package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/booking"
)

type BookingHandler struct {
	session *booking.Session
}

type startBookingRequest struct {
	PackageID string `json:"package_id"`
}

func NewBookingHandler(session *booking.Session) *BookingHandler {
	return &BookingHandler{session: session}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.get)
	router.POST("/start", h.start)
	router.PATCH("/", h.update)
	router.DELETE("/", h.clear)
	router.POST("/complete", h.complete)
	router.GET("/history", h.history)
}

func (h *BookingHandler) get(c *gin.Context) {
	active := h.session.Active()
	if active == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active booking session"})
		return
	}
	c.JSON(http.StatusOK, active)
}

// start opens a session for a provider package. A package with no open dates
// yields a null session rather than an error, matching the booking button
// that was never shown.
func (h *BookingHandler) start(c *gin.Context) {
	var req startBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active, err := h.session.Start(c.Request.Context(), req.PackageID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *BookingHandler) update(c *gin.Context) {
	var req booking.UpdateFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Zero travelers is a validation error surfaced inline, before anything
	// reaches the price calculator.
	if req.Travelers != nil && *req.Travelers < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travelers must be at least 1"})
		return
	}

	active, err := h.session.Update(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *BookingHandler) clear(c *gin.Context) {
	h.session.Clear()
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) complete(c *gin.Context) {
	booked, err := h.session.Complete(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booked)
}

func (h *BookingHandler) history(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Booked())
}
