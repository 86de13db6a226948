package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"local-ads/internal/adapter/cache"
	httpadapter "local-ads/internal/adapter/http"
	"local-ads/internal/adapter/kafka"
	"local-ads/internal/adapter/memory"
	"local-ads/internal/adapter/postgres"
	redisadapter "local-ads/internal/adapter/redis"
	"local-ads/internal/adapter/usecase"
	"local-ads/internal/config"
	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
	"local-ads/internal/db"
)

// stores bundles the persistence ports of one driver.
type stores struct {
	tx        port.Transactor
	campaigns port.CampaignRepository
	sellers   port.SellerRepository
	ledger    port.FundLedger
	cities    port.CityRepository
	keywords  port.KeywordRepository
	close     func()
}

// main loads configuration, opens the selected store, wires the use cases
// and serves HTTP until SIGINT or SIGTERM.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("store initialisation error", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		return
	}
	defer st.close()

	cities, err := cache.NewCityIndex(st.cities, cfg.Cache.CitySize)
	if err != nil {
		logger.Error("city cache error", slog.Any("error", err))
		return
	}
	keywords := cache.NewKeywordCatalog(st.keywords, cfg.Cache.KeywordTTL)

	deps := usecase.CampaignDeps{
		Tx:        st.tx,
		Campaigns: st.campaigns,
		Sellers:   st.sellers,
		Ledger:    st.ledger,
		Cities:    cities,
		Keywords:  keywords,
		Logger:    logger,
	}
	if cfg.Kafka.Enabled() {
		publisher := kafka.NewPublisher(cfg.Kafka)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("kafka writer close error", slog.Any("error", err))
			}
		}()
		deps.Events = publisher
		logger.Info("campaign events enabled", slog.String("topic", cfg.Kafka.Topic))
	}

	campaigns := usecase.NewCampaignUseCase(deps)
	sellers := usecase.NewSellerUseCase(st.tx, st.sellers, st.campaigns, st.ledger, logger)

	if cfg.Admin.Password != "" {
		err = sellers.EnsureAdmin(ctx, port.RegisterSellerInput{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			logger.Error("admin account error", slog.Any("error", err))
			return
		}
	}

	hd := httpadapter.Deps{
		Campaigns: campaigns,
		Matcher:   usecase.NewLocationMatcher(cities, st.campaigns),
		Sellers:   sellers,
		Catalog:   usecase.NewCatalogUseCase(cities, keywords),
		Logger:    logger,
	}
	if cfg.Redis.Enabled() {
		client, err := redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("search rate limiting disabled", slog.Any("error", err))
		} else {
			defer client.Close()
			hd.Limiter = redisadapter.NewRateLimiter(client, "ratelimit:search", cfg.Redis.SearchLimit)
		}
	}

	handler := httpadapter.NewHandler(hd)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("driver", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case value := <-quit:
		exitCode = 128 + int(value.(syscall.Signal))
	case <-ctx.Done():
		return
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		store := memory.NewStore(domain.DefaultCities, domain.DefaultKeywords)
		logger.Warn("using in-memory store, data is lost on restart")
		return &stores{
			tx:        store,
			campaigns: store.Campaigns(),
			sellers:   store.Sellers(),
			ledger:    store,
			cities:    store.Cities(),
			keywords:  store.Keywords(),
			close:     func() {},
		}, nil
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool, domain.DefaultCities, domain.DefaultKeywords); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	tx := postgres.NewTransactor(pool)
	sellers := postgres.NewSellerRepository(tx)
	return &stores{
		tx:        tx,
		campaigns: postgres.NewCampaignRepository(tx),
		sellers:   sellers,
		ledger:    sellers,
		cities:    postgres.NewCityRepository(tx),
		keywords:  postgres.NewKeywordRepository(tx),
		close:     pool.Close,
	}, nil
}
