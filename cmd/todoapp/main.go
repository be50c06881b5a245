package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	adapthttp "github.com/JorgeGarcia-Dev/todoapp/internal/adapter/http"
	"github.com/JorgeGarcia-Dev/todoapp/internal/adapter/sqlstore"
	"github.com/JorgeGarcia-Dev/todoapp/internal/app"
	"github.com/JorgeGarcia-Dev/todoapp/internal/config"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

func main() {
	log := zap.Must(zap.NewProduction())
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(env("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	store, err := sqlstore.Open(cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	authSvc := app.NewAuthService(sqlstore.NewUserRepo(store), sqlstore.NewSessionRepo(store))
	todoSvc := app.NewTodoService(sqlstore.NewTodoRepo(store))

	sso, err := adapthttp.NewSSO(context.Background(), cfg.OIDC)
	if err != nil {
		log.Fatal("oidc discovery", zap.Error(err))
	}

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	srv, err := adapthttp.New(todoSvc, authSvc, cookieStore, sso, cfg.WebDir, log)
	if err != nil {
		log.Fatal("server init", zap.Error(err))
	}

	go purgeExpiredSessions(authSvc, log)

	log.Info("listening", zap.String("addr", cfg.Addr), zap.String("driver", cfg.DB.Driver))
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", zap.Error(err))
	}
}

func purgeExpiredSessions(auth *app.AuthService, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := auth.PurgeExpiredSessions(context.Background()); err != nil {
			log.Warn("purge expired sessions", zap.Error(err))
		}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
