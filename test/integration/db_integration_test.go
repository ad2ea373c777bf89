package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/joshu-sajeev/contactrelay/internal/storage/postgres"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	testDB   *sql.DB
	testDSN  string
	testPort string
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	pool.MaxWait = 60 * time.Second

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	pg, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "17-alpine",
		Env: []string{
			"POSTGRES_USER=testuser",
			"POSTGRES_PASSWORD=testpass",
			"POSTGRES_DB=contactrelay",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start postgres container: %s", err)
	}

	testPort = pg.GetPort("5432/tcp")
	testDSN = fmt.Sprintf(
		"host=localhost user=testuser password=testpass dbname=contactrelay port=%s sslmode=disable TimeZone=UTC",
		testPort,
	)

	if err := pool.Retry(func() error {
		var err error
		testDB, err = sql.Open("postgres", testDSN)
		if err != nil {
			log.Printf("Failed to open database: %v", err)
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := testDB.PingContext(ctx); err != nil {
			testDB.Close()
			return err
		}

		if err := postgres.Migrate(testDB, "up"); err != nil {
			log.Printf("Failed to run migrations: %v", err)
			testDB.Close()
			return err
		}

		return nil
	}); err != nil {
		log.Fatalf("Could not connect to postgres: %s", err)
	}

	os.Setenv("POSTGRES_USER", "testuser")
	os.Setenv("POSTGRES_PASSWORD", "testpass")
	os.Setenv("POSTGRES_DB", "contactrelay")
	os.Setenv("POSTGRES_HOST", "localhost")
	os.Setenv("POSTGRES_PORT", testPort)
	os.Setenv("DB_MAX_RETRIES", "3")
	os.Setenv("DB_RETRY_DELAY", "100ms")
	os.Setenv("DB_LOG_LEVEL", "silent")

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}

	if err := pool.Purge(pg); err != nil {
		log.Fatalf("Could not purge postgres container: %s", err)
	}

	os.Exit(code)
}

// connect opens a gorm handle from the environment set up in TestMain.
func connect(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.ConnectDB(context.Background(), nil, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func truncate(t testing.TB) {
	t.Helper()
	_, err := testDB.Exec("TRUNCATE contact_submissions RESTART IDENTITY")
	require.NoError(t, err)
}

func TestConnectDB(t *testing.T) {
	t.Run("config from environment", func(t *testing.T) {
		db := connect(t)

		var dbName string
		require.NoError(t, db.Raw("SELECT current_database()").Scan(&dbName).Error)
		assert.Equal(t, "contactrelay", dbName)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 20, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("wrong password fails after retries", func(t *testing.T) {
		cfg, err := postgres.LoadConfigFromEnv(context.Background())
		require.NoError(t, err)
		cfg.Password = "wrong"
		cfg.MaxRetries = 2

		_, err = postgres.ConnectDB(context.Background(), cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
	})
}

func TestMigrations(t *testing.T) {
	var exists bool
	err := testDB.QueryRow(`SELECT EXISTS (
		SELECT 1 FROM information_schema.tables WHERE table_name = 'contact_submissions'
	)`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, postgres.Migrate(testDB, "status"))

	require.NoError(t, postgres.Migrate(testDB, "down"))
	err = testDB.QueryRow(`SELECT EXISTS (
		SELECT 1 FROM information_schema.tables WHERE table_name = 'contact_submissions'
	)`).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, postgres.Migrate(testDB, "up"))
}
