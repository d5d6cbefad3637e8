package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/redsthan/Group-project---Goods-DB/internal/config"
	"github.com/redsthan/Group-project---Goods-DB/internal/middleware"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/auth"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/basket"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/category"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "local" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.SchemaPath != "" {
		err = db.ExecFile(ctx, cfg.SchemaPath)
	} else {
		err = db.ExecScript(ctx, storage.CreationScript)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("apply schema")
	}
	log.Info().Str("path", db.Path()).Msg("database ready")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestLogger(log))

	// ── Phase 1: Accounts & Auth ────────────────────────────
	userService := user.NewService(db)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userService, cfg.JWTSecret, cfg.TokenTTL)
	auth.NewHandler(authService).RegisterRoutes(router)
	verifier := auth.NewVerifier(userService, cfg.JWTSecret)

	// ── Phase 2: Catalog ────────────────────────────────────
	catalogService := catalog.NewService(db)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 3: Categories & Tags ──────────────────────────
	categoryService := category.NewService(db)
	category.NewHandler(categoryService).RegisterRoutes(router)

	// ── Phase 4: Baskets ────────────────────────────────────
	basketService := basket.NewService(db, catalogService)
	basket.NewHandler(basketService, verifier.Authenticate).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("goods API server starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
