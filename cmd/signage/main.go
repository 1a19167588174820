package main // Signage feed entry point

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/config"
	"github.com/nightwalk/night-walk/internal/poller"
)

// cmd/signage polls the public vacancy endpoint for a fixed set of shops
// and re-serves the latest badges over a local HTTP feed.  In-store
// displays and widget backends read from this process instead of each
// hitting the API on their own.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.LoadSignageConfig()
	if len(cfg.ShopIDs) == 0 {
		log.Fatal("SIGNAGE_SHOP_IDS is empty; nothing to display")
	}

	fetcher := poller.NewHTTPFetcher(cfg.BaseURL)
	p := poller.New(fetcher, cfg.ShopIDs, cfg.PollInterval, cfg.MaxConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go p.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	// All tracked badges at once, keyed by shop id.
	e.GET("/badges", func(c echo.Context) error {
		return c.JSON(http.StatusOK, p.Snapshot())
	})
	// One badge; 404 only for shops the feed does not track.
	e.GET("/badges/:shop_id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("shop_id"), 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shop id"})
		}
		v, ok := p.View(id)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "shop not tracked"})
		}
		return c.JSON(http.StatusOK, v)
	})

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutCtx)
	}()

	log.Printf("signage feed on %s polling %d shops every %s",
		cfg.ListenAddr, len(cfg.ShopIDs), cfg.PollInterval)
	if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
