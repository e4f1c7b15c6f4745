package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bazarbot/internal/catalog"
	"bazarbot/internal/feed"
	"bazarbot/pkg/database"
	"bazarbot/pkg/utils"
)

func main() {
	cfg := utils.Load()

	store, describe := openStore(cfg)
	defer store.Close()

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start the TCP feed first (so you notice binding errors early)
	hub := feed.NewHub()
	router.GET("/ws", feed.WSHandler(hub))
	feedSrv := feed.NewServer(cfg.FeedAddr, hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": describe})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if _, err := store.List(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"store":       "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"store":       describe,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	handler := catalog.NewHandler(store, hub)
	handler.RegisterRoutes(router.Group("/api"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := feedSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := feedSrv.Close(); err != nil {
		log.Printf("feed shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}

// openStore picks the catalog backend from config: sqlite (default) or the
// JSON snapshot file.
func openStore(cfg utils.Config) (catalog.Store, string) {
	switch cfg.Backend {
	case "file":
		store, err := catalog.NewFileStore(cfg.SnapshotPath)
		if err != nil {
			log.Fatalf("open snapshot store: %v", err)
		}
		return store, "file:" + cfg.SnapshotPath

	case "sqlite", "":
		dbCfg := database.DefaultConfig()
		db := database.MustOpen(dbCfg)
		if err := database.Migrate(db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
		return catalog.NewSQLiteStore(db), "sqlite:" + dbCfg.Path

	default:
		log.Fatalf("unknown CATALOG_BACKEND %q (want sqlite or file)", cfg.Backend)
		return nil, ""
	}
}
