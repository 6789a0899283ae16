package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	pgstore "practice-quiz-service/internal/infra/postgres"
	pgmigrations "practice-quiz-service/internal/infra/postgres/migrations"
	infraredis "practice-quiz-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const importText = `Question 1:
What is 2 + 2?
A) 3
B) 4
C) 5
Answer: B

Question 2:
Which numbers are even?
A) 2
B) 3
C) 4
Answer: A, C
Explanation: Even numbers divide by two.
`

func TestPracticeAttemptEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	runMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()
	store := pgstore.NewQuizSetStore(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()
	pools := infraredis.NewPoolRepository(redisClient, store, 5*time.Minute)
	results := infraredis.NewResultStore(redisClient, 10, time.Hour)

	admin := app.NewAdminService(store, pools)
	quizzes := app.NewQuizService(pools, store, results)

	created, err := admin.CreateQuizSet(ctx, app.CreateQuizSetRequest{ID: "arith", Name: "Arithmetic", Text: importText})
	if err != nil {
		t.Fatalf("create quiz set: %v", err)
	}

	catalog, err := quizzes.Catalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if set, ok := catalog.Find(created.Set.ID); !ok || set.QuestionCount != 2 {
		t.Fatalf("expected stored set in catalog, got %+v", catalog.Sets)
	}

	session, err := quizzes.StartSession(ctx, app.SessionConfig{SetID: created.Set.ID, TimeLimit: time.Minute})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	for session.State() == app.StateActive {
		q, _ := session.CurrentQuestion()
		if err := session.SubmitAnswer(q.CorrectAnswers); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	record, err := quizzes.Finish(ctx, created.Set.ID, session)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if record.Result.Score != 1000 || !record.Result.Passed {
		t.Fatalf("expected full marks, got %+v", record.Result)
	}

	history, err := quizzes.History(ctx, created.Set.ID, 5)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != record.ID {
		t.Fatalf("expected attempt in redis history, got %+v", history)
	}

	if _, err := admin.DeleteQuizSet(ctx, created.Set.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := quizzes.LoadPool(ctx, created.Set.ID); !errors.Is(err, domain.ErrQuizSetNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "practice", "POSTGRES_PASSWORD": "practice", "POSTGRES_DB": "practice"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://practice:practice@%s:%s/practice?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func runMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
