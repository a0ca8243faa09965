package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthttp "github.com/twitclone/backend/internal/account/http"
	accountrepo "github.com/twitclone/backend/internal/account/repository"
	accountservice "github.com/twitclone/backend/internal/account/service"
	authhttp "github.com/twitclone/backend/internal/auth/http"
	authservice "github.com/twitclone/backend/internal/auth/service"
	"github.com/twitclone/backend/internal/common/authgate"
	"github.com/twitclone/backend/internal/common/clock"
	"github.com/twitclone/backend/internal/common/config"
	commoncrypto "github.com/twitclone/backend/internal/common/crypto"
	"github.com/twitclone/backend/internal/common/db"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
	srv "github.com/twitclone/backend/internal/common/server"
	searchhttp "github.com/twitclone/backend/internal/search/http"
	searchservice "github.com/twitclone/backend/internal/search/service"
	tweethttp "github.com/twitclone/backend/internal/tweet/http"
	tweetrepo "github.com/twitclone/backend/internal/tweet/repository"
	tweetservice "github.com/twitclone/backend/internal/tweet/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to load config: %v\n", err))
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "api", cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("failed to ensure database schema: %v", err)
	}

	accountRepo := accountrepo.NewPgRepository(pool)
	tweetRepo := tweetrepo.NewPgRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	realClock := clock.NewRealClock()

	tokenIssuer := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, realClock)
	authService := authservice.NewAuthService(accountRepo, hasher, tokenIssuer, log)
	accountService := accountservice.NewAccountService(accountRepo, hasher, log)
	tweetService := tweetservice.NewTweetService(tweetRepo, idGenerator, realClock, log)
	searchService := searchservice.NewSearchService(accountRepo, tweetRepo, log)

	gate := authgate.Middleware(tokenIssuer, log)

	accountHandler := accounthttp.NewHandler(accountService, gate, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/account", accountHandler)
	mux.Handle("/account/", accountHandler)
	mux.Handle("/auth/", authhttp.NewHandler(authService, cfg, log))
	mux.Handle("/tweets", tweethttp.NewHandler(tweetService, gate, cfg, log))
	mux.Handle("/search", searchhttp.NewHandler(searchService, cfg, log))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	handler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, handler)

	srv.StartWithGracefulShutdown(server, log, "api")
}
