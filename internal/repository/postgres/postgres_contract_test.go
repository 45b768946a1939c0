package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/cricket-stats-service/internal/config"
	"github.com/maxviazov/cricket-stats-service/internal/repository/contract"
	"github.com/maxviazov/cricket-stats-service/internal/repository/migrate"
	"github.com/rs/zerolog"
)

var (
	db     *sql.DB
	pool   *pgxpool.Pool
	dsn    string
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	dsn = buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	var err error
	pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}
	if err := pool.Ping(context.Background()); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}
	db = stdlib.OpenDBFromPool(pool)

	if err := migrate.NewPostgres(db, zerolog.New(io.Discard)).Init(context.Background()); err != nil {
		fmt.Println("[contract] migrate error:", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = db.Close()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	dbName := firstNonEmpty(os.Getenv("APP_POSTGRES_DBNAME"), os.Getenv("POSTGRES_DB"))
	if user == "" || pass == "" || dbName == "" {
		return ""
	}
	port, err := strconv.Atoi(firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432"))
	if err != nil {
		return ""
	}
	return DSN(config.PostgresConfig{
		Host:     firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost"),
		Port:     port,
		User:     user,
		Password: pass,
		DBName:   dbName,
		SSLMode:  firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), "disable"),
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := db.Exec("TRUNCATE TABLE players, matches RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func makeStores(t *testing.T) (contract.Stores, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return contract.Stores{
		Schema:  migrate.NewPostgres(db, zerolog.New(io.Discard)),
		Players: NewPlayerRepository(pool),
		Matches: NewMatchRepository(pool),
		Pinger:  NewPinger(pool),
	}, func() { truncateAll(t) }
}

func TestPostgresContract(t *testing.T) {
	contract.RunAll(t, makeStores)
}

func TestDSN(t *testing.T) {
	got := DSN(config.PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p@ss", DBName: "cricket", SSLMode: "disable"})
	want := "postgres://u:p%40ss@db:5433/cricket?sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
