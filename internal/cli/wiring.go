package cli

import (
	"context"
	"time"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/config"
	"practice-quiz-service/internal/domain"
	"practice-quiz-service/internal/infra/filestore"
	"practice-quiz-service/internal/infra/memory"
	pgstore "practice-quiz-service/internal/infra/postgres"
	redisstore "practice-quiz-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// services holds everything the subcommands need, built from one config.
type services struct {
	quizzes *app.QuizService
	admin   *app.AdminService
	close   func()
}

// quizSetStore is satisfied by both the directory and the postgres store.
type quizSetStore interface {
	app.QuizSetStore
	LoadPool(ctx context.Context, setID string) ([]domain.Question, error)
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var store quizSetStore = filestore.NewStore(cfg.Data.Dir)
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		closers = append(closers, pool.Close)
		store = pgstore.NewQuizSetStore(pool)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var pools app.PoolRepository
	if redisClient != nil {
		pools = redisstore.NewPoolRepository(redisClient, store, quizTTL)
	} else {
		pools = memory.NewPoolRepository(store, quizTTL)
	}

	var results app.ResultRepository
	if redisClient != nil {
		resultTTL := config.TTLDuration(cfg.Results.TTL, 7*24*time.Hour)
		results = redisstore.NewResultStore(redisClient, cfg.Results.Limit, resultTTL)
	} else {
		results = memory.NewResultStore(cfg.Results.Limit)
	}

	return &services{
		quizzes: app.NewQuizService(pools, store, results),
		admin:   app.NewAdminService(store, pools),
		close:   closeAll,
	}, nil
}

func loadServices(ctx context.Context, configPath string) (config.Config, *services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	svc, err := buildServices(ctx, cfg)
	return cfg, svc, err
}
