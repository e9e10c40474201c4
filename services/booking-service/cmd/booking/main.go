package main

import (
	"context"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zvv24/shareit/pkg/clock"
	"github.com/zvv24/shareit/pkg/config"
	"github.com/zvv24/shareit/pkg/db"
	"github.com/zvv24/shareit/pkg/mq"
	"github.com/zvv24/shareit/pkg/obs"
	"github.com/zvv24/shareit/services/booking-service/internal/repository"
	"github.com/zvv24/shareit/services/booking-service/internal/service"
	thttp "github.com/zvv24/shareit/services/booking-service/internal/transport/http"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("booking-service")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// DB
	gdb := db.Open(cfg.PGBookingDSN)
	users := repository.NewUserRepo(gdb)
	items := repository.NewItemRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	must(0, users.Migrate())
	must(0, items.Migrate())
	must(0, bookings.Migrate())

	// Publisher for booking.* events
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	svc := service.NewBookingSvc(users, items, bookings, clock.System(), pub)
	srv := &nethttp.Server{
		Addr:    cfg.BookingHTTPAddr,
		Handler: thttp.NewRouter(svc),
	}

	go func() {
		log.Println("[booking] HTTP listening on", cfg.BookingHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("[booking] stopped")
}
