package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zvv24/shareit/services/booking-service/internal/domain"
	"github.com/zvv24/shareit/services/booking-service/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookingResp struct {
	ID       string        `json:"id"`
	ItemID   string        `json:"item_id"`
	BookerID string        `json:"booker_id"`
	StartISO string        `json:"start_iso"`
	EndISO   string        `json:"end_iso"`
	Status   domain.Status `json:"status"`
}

func toResp(b *domain.Booking) bookingResp {
	return bookingResp{
		ID:       b.ID,
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
		StartISO: b.Start.UTC().Format(time.RFC3339),
		EndISO:   b.End.UTC().Format(time.RFC3339),
		Status:   b.Status,
	}
}

func parseRFC3339UTC(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// writeErr translates engine error kinds to HTTP statuses; that mapping is
// the only HTTP knowledge the engine side never carries.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		ItemID   string `json:"item_id" binding:"required"`
		StartISO string `json:"start_iso" binding:"required"` // RFC3339
		EndISO   string `json:"end_iso"   binding:"required"` // RFC3339
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseRFC3339UTC(in.StartISO)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_iso: " + err.Error()})
		return
	}
	end, err := parseRFC3339UTC(in.EndISO)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_iso: " + err.Error()})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in.ItemID, callerID(c), start, end)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResp(b))
}

// PATCH /bookings/:id?approved=true|false
func (h *BookingHandler) SetStatus(c *gin.Context) {
	approved := c.Query("approved")
	if approved != "true" && approved != "false" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}
	b, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), callerID(c), approved == "true")
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings?state=ALL and GET /bookings/owner?state=ALL
func (h *BookingHandler) List(p domain.Perspective) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := domain.ParseStateFilter(c.Query("state"))
		if err != nil {
			writeErr(c, err)
			return
		}
		list, err := h.svc.List(c.Request.Context(), callerID(c), p, f)
		if err != nil {
			writeErr(c, err)
			return
		}
		out := make([]bookingResp, 0, len(list))
		for i := range list {
			out = append(out, toResp(&list[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /items/:itemId/bookings
func (h *BookingHandler) Schedule(c *gin.Context) {
	sched, err := h.svc.Schedule(c.Request.Context(), c.Param("itemId"), callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp := gin.H{"last": nil, "next": nil}
	if sched.Last != nil {
		resp["last"] = toResp(sched.Last)
	}
	if sched.Next != nil {
		resp["next"] = toResp(sched.Next)
	}
	c.JSON(http.StatusOK, resp)
}
