package http

import (
	"github.com/gin-gonic/gin"

	"github.com/zvv24/shareit/services/booking-service/internal/domain"
	"github.com/zvv24/shareit/services/booking-service/internal/service"
)

func NewRouter(svc *service.BookingSvc) *gin.Engine {
	r := gin.Default()

	h := NewBookingHandler(svc)
	secured := r.Group("", JWTAuth())
	{
		secured.POST("/bookings", h.Create)
		secured.GET("/bookings", h.List(domain.AsBooker))
		secured.GET("/bookings/owner", h.List(domain.AsOwner))
		secured.GET("/bookings/:id", h.Get)
		secured.PATCH("/bookings/:id", h.SetStatus)
		secured.GET("/items/:itemId/bookings", h.Schedule)
	}
	return r
}
