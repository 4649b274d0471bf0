//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"kuponbot/cmd/bootstrap"
	"kuponbot/cmd/bootstrap/components"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/infra/db"
	"kuponbot/internal/pkg/config"
	"kuponbot/internal/pkg/password"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/conversation"
	"kuponbot/internal/usecase/notify"
	"kuponbot/internal/usecase/scheduler"
	"kuponbot/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// OperatorPassword unlocks POST /api/auth/login in the e2e app.
const OperatorPassword = "e2e-operator"

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// FakeTelegram records outbound traffic and answers membership checks from a map.
type FakeTelegram struct {
	mu       sync.Mutex
	sent     []notify.OutboundMessage
	copies   int
	statuses map[int64]string
}

func NewFakeTelegram() *FakeTelegram {
	return &FakeTelegram{statuses: make(map[int64]string)}
}

func (f *FakeTelegram) Send(_ context.Context, msg notify.OutboundMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *FakeTelegram) Copy(context.Context, int64, int64, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copies++
	return nil
}

func (f *FakeTelegram) AnswerCallback(context.Context, string, string) error { return nil }

func (f *FakeTelegram) MemberStatus(_ context.Context, _ string, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.statuses[userID]; ok {
		return st, nil
	}
	return "left", nil
}

func (f *FakeTelegram) SetStatus(userID int64, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[userID] = status
}

// SentTo returns texts delivered to one chat in order.
func (f *FakeTelegram) SentTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *FakeTelegram) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.copies = 0
	f.statuses = make(map[int64]string)
}

// ------------------------------------------------------------
// per test process setup
// ------------------------------------------------------------
type Env struct {
	Pool     *pgxpool.Pool
	Router   *gin.Engine
	Config   config.Config
	Telegram *FakeTelegram
	Engine   *conversation.Engine
	Sweeps   scheduler.SweepRunner
}

func setupE2EEnvironment(t *testing.T) Env {
	postgresInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	env, app := buildE2EApp(dbConfig)
	env.Pool = pool
	require.NotNil(t, env.Router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return env
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to resolve postgres container address")

	return postgresInfo
}

func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// one database per test process
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			time.Sleep(min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second))
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempts+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Asia/Tashkent",
		MaxConns: 10,
	}

	pool, cleanup, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(cleanup)

	require.NoError(t, applySchema(t, pool), "schema migration failed")
	return pool, dbConfig
}

func applySchema(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	const file = "migrations/schema.sql"
	// go test runs in the package directory
	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
	} {
		if sqlContent, readErr = os.ReadFile(cand); readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read %s: %w", file, readErr)
	}

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to execute %s: %w", file, err)
	}
	return nil
}

// buildE2EApp wires the production modules against postgres with the
// Telegram transport replaced by FakeTelegram.
func buildE2EApp(dbConfig config.DBConfig) (Env, *fx.App) {
	var env Env
	fake := NewFakeTelegram()

	operatorHash, err := password.Hash(OperatorPassword)
	if err != nil {
		panic(fmt.Sprintf("failed to hash operator password: %v", err))
	}

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			cfg := config.NewTestConfig()
			cfg.DB = dbConfig
			cfg.Storage.Driver = "postgres"
			cfg.JWT.OperatorPasswordHash = operatorHash
			return cfg
		}),
	)

	testTelegramModule := fx.Module("testtelegram",
		fx.Provide(
			func() *FakeTelegram { return fake },
			func(f *FakeTelegram) notify.Sender { return f },
			func(f *FakeTelegram) notify.MembershipChecker { return f },
			fx.Annotate(
				components.NewRoles,
				fx.As(new(notify.AdminDirectory)),
				fx.As(new(session.RoleResolver)),
			),
			fx.Annotate(
				notify.NewDispatcher,
				fx.As(new(conversation.Outlet)),
				fx.As(new(broadcast.Deliverer)),
				fx.As(new(scheduler.Notifier)),
				fx.As(new(commands.UserNotifier)),
			),
		),
	)

	app := fx.New(
		testConfigModule,
		testTelegramModule,
		bootstrap.LoggerModule,
		bootstrap.StorageModule,
		bootstrap.JWTModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&env.Router, &env.Config, &env.Telegram, &env.Engine, &env.Sweeps),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}
	return env, app
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// one postgres container per test binary
func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=256m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "kuponbot-e2e"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start postgres container")
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Env
}

func (s *SharedSuite) SetupSuite() {
	s.Env = setupE2EEnvironment(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.Pool), "failed to reset database state")
	s.Telegram.Reset()
}
