package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tailorcart/internal/attachment"
	"tailorcart/internal/checkout"
	"tailorcart/internal/config"
	"tailorcart/internal/db"
	"tailorcart/internal/httpserver"
	catalogrepo "tailorcart/internal/repository/catalog"
	profilerepo "tailorcart/internal/repository/profile"
	catalogsvc "tailorcart/internal/service/catalog"
	profilesvc "tailorcart/internal/service/profile"
	"tailorcart/internal/session"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer redisClient.Close()

	sess := session.NewStatic(cfg.UserID, cfg.UserName)
	identity, ok := sess.Current()
	if !ok {
		logger.Fatalf("no signed-in user: set USER_ID")
	}

	catalog := catalogsvc.New(catalogrepo.NewPostgres(dbpool, logger))
	attachments := attachment.NewRedisStore(redisClient, cfg.AttachmentTTL)
	store, err := profilesvc.New(ctx, identity, profilesvc.Deps{
		Repo:        profilerepo.NewPostgres(dbpool, logger),
		Catalog:     catalog,
		Attachments: attachments,
		Finalizer:   checkout.New(),
		Logger:      logger,
		SaveTimeout: cfg.SaveTimeout,
	})
	if err != nil {
		logger.Fatalf("load profile: %v", err)
	}
	if store.SyncAddress(session.NewAddress(cfg.UserAddress)) {
		logger.Printf("address synced from environment")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Profile:     store,
		Catalog:     catalog,
		Attachments: attachments,
		Ready: httpserver.Checks{
			"db":    dbpool,
			"redis": attachments,
		},
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s user_id=%s", cfg.HTTPAddr, identity.UserID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	if err := store.Flush(ctx); err != nil {
		logger.Printf("flush profile: %v", err)
	}
}
