package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kasirprof/backend/internal/config"
	"kasirprof/backend/internal/httpapi"
	"kasirprof/backend/internal/kv"
	"kasirprof/backend/internal/kv/memory"
	pgkv "kasirprof/backend/internal/kv/postgres"
	rediskv "kasirprof/backend/internal/kv/redis"
	"kasirprof/backend/internal/receipt"
	"kasirprof/backend/internal/repo"
	"kasirprof/backend/internal/service"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closers := openStore(ctx, cfg)

	catalog := repo.NewCatalog(store)
	ledger := repo.NewLedger(store)
	register := repo.NewRegister(catalog, ledger)
	printer := receipt.NewPrinter(receipt.StoreInfo{
		Name:    cfg.StoreName,
		Address: cfg.StoreAddress,
		Phone:   cfg.StorePhone,
	})

	svc := service.New(catalog, ledger, register, printer, cfg.LowStockThreshold)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.OperatorUsername, cfg.OperatorPassword)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("POS backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// openStore picks the key-value backend: Postgres when DATABASE_URL is set,
// otherwise Redis when REDIS_ADDR is set, otherwise in-memory for dev mode.
func openStore(ctx context.Context, cfg config.Config) (kv.Store, []func() error) {
	closers := make([]func() error, 0, 1)

	if cfg.DatabaseURL != "" {
		pg, err := pgkv.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with in-memory fallback", err)
		}
		closers = append(closers, pg.Close)
		log.Println("store: postgres")
		return pg, closers
	}

	if cfg.RedisAddr != "" {
		rd := rediskv.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rd.Ping(ctx); err != nil {
			log.Fatalf("redis unavailable (%v) and REDIS_ADDR is set; refusing to start with in-memory fallback", err)
		}
		closers = append(closers, rd.Close)
		log.Println("store: redis")
		return rd, closers
	}

	log.Println("store: in-memory (data is lost on restart)")
	return memory.New(), closers
}
