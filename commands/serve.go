package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/routes"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	// Serve flags
	listenAddr      string
	shutdownTimeout time.Duration
)

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and WebSocket feed",
	Long: `Run the HTTP API and the /socket WebSocket feed.

When REDIS_ADDR is set, events go through a Redis channel so every
instance behind a load balancer pushes them to its own clients.

Examples:
  qa serve                  # listen on $PORT
  qa serve --store memory   # no database, for local development`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default :$PORT)")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	hub := events.NewHub()
	var publisher events.Publisher = hub
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		relay := events.NewRedisRelay(client, cfg.RedisChannel, hub)
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Printf("serve: redis relay stopped: %v", err)
			}
		}()
		publisher = relay
	}

	svc := services.New(st, publisher, services.WithMailer(newMailer(cfg)))
	tokens := utils.NewTokens(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())

	r := gin.Default()
	routes.Setup(r, controllers.NewHandler(svc, tokens), tokens, hub.Handler())

	addr := listenAddr
	if addr == "" {
		addr = ":" + cfg.Port
	}
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serve: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
