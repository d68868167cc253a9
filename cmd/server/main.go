package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cabin-rental/internal/config"
    "github.com/iliyamo/cabin-rental/internal/handler"
    "github.com/iliyamo/cabin-rental/internal/middleware"
    "github.com/iliyamo/cabin-rental/internal/queue"
    "github.com/iliyamo/cabin-rental/internal/repository"
    "github.com/iliyamo/cabin-rental/internal/router"
    "github.com/iliyamo/cabin-rental/internal/service"
    "github.com/iliyamo/cabin-rental/internal/session"
    "github.com/iliyamo/cabin-rental/internal/store"
)

func main() {
    _ = godotenv.Load() // .env is optional; real env vars win
    cfg := config.Load()

    // Redis backs both the persistent store and the rate limiter.
    // When it is unreachable the service still starts: state lives in
    // memory for the process lifetime and the limiter disables itself.
    rdb := config.NewRedisClient()
    var kv store.KV
    if rdb != nil {
        kv = store.NewRedis(rdb)
    } else {
        log.Printf("redis unavailable, falling back to in-memory store (state will not survive restarts)")
        kv = store.NewMemory()
    }

    ctx := context.Background()
    availability := repository.NewAvailabilityRepo(kv)
    if err := availability.Load(ctx); err != nil {
        log.Fatalf("load availability: %v", err)
    }
    ledger := repository.NewLedgerRepo(kv)
    if err := ledger.Load(ctx); err != nil {
        log.Fatalf("load ledger: %v", err)
    }

    sessions := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)
    svc := service.NewBookingService(availability, ledger, sessions, cfg.NightlyRateCents, queue.PublishBookingConfirmed)

    // Background consumer mirrors confirmed bookings into logs/booking.log.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAPI(e,
        handler.NewAvailabilityHandler(availability),
        handler.NewSessionHandler(sessions),
        handler.NewBookingHandler(svc, ledger),
        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
    )

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
