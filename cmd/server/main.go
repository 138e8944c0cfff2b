package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"mindhaven/internal/assessment"
	"mindhaven/internal/bank"
	"mindhaven/internal/config"
	"mindhaven/internal/order"
	"mindhaven/internal/transport/rest"
	"mindhaven/internal/unlock"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	if cfg.Pay.IsMockMode() {
		log.Println("Pay gateway: NOT CONFIGURED (mock mode)")
	} else {
		log.Printf("Pay gateway: configured, appid=%s", cfg.Pay.AppID)
	}

	// Question catalog
	questionBank := bank.New()
	log.Printf("Question bank loaded: %d questions", len(questionBank.All()))

	// Order store: in-memory by default, Redis when configured
	var store order.Store = order.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
		store = order.NewRedisStore(rdb)
	}

	// Services
	orderSvc := order.NewService(store, cfg.Pay)
	visibility := unlock.NewHub()
	sessions := assessment.NewManager(questionBank, orderSvc, visibility, cfg.ShareURL, cfg.Pay.Price)

	router := rest.NewRouter(&rest.Container{
		Sessions:   sessions,
		Orders:     orderSvc,
		Visibility: visibility,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/assessments")
		log.Println("  POST /v1/assessments/{id}/answers")
		log.Println("  GET  /v1/assessments/{id}/result")
		log.Println("  POST /v1/assessments/{id}/unlock/...")
		log.Println("  POST /v1/pay/create")
		log.Println("  GET  /v1/pay/status/{orderId}")
		log.Println("  POST /v1/pay/notify")
		log.Println("  POST /v1/pay/mock_success")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
