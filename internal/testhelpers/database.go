package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/backend/internal/models"
)

// SetupSQLiteDatabase opens an in-memory SQLite database with the recipe
// schema migrated. It is the default backing store for unit tests.
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.Recipe{}, &models.Ingredient{}, &models.Tag{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

// SetupPostgresDatabase starts a containerized PostgreSQL instance and
// returns a migrated connection. Tests are skipped when Docker is not
// available.
func SetupPostgresDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postpass",
			"POSTGRES_DB":       "plateful_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=postgres password=postpass dbname=plateful_test sslmode=disable",
		host, port.Int(),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to postgres container: %v", err)
	}
	if err := db.AutoMigrate(&models.Recipe{}, &models.Ingredient{}, &models.Tag{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

// SeedRecipes inserts the given rows and refreshes the vocabulary tables
// from their ingredients and tags.
func SeedRecipes(t *testing.T, db *gorm.DB, recipes []models.Recipe) {
	t.Helper()

	if err := db.Create(&recipes).Error; err != nil {
		t.Fatalf("failed to seed recipes: %v", err)
	}

	seen := map[string]bool{}
	for _, r := range recipes {
		for _, name := range r.Ingredients {
			if !seen["i:"+name] {
				seen["i:"+name] = true
				if err := db.Create(&models.Ingredient{Name: name}).Error; err != nil {
					t.Fatalf("failed to seed ingredient %q: %v", name, err)
				}
			}
		}
		for _, name := range r.Tags {
			if !seen["t:"+name] {
				seen["t:"+name] = true
				if err := db.Create(&models.Tag{Name: name}).Error; err != nil {
					t.Fatalf("failed to seed tag %q: %v", name, err)
				}
			}
		}
	}
}

// IntPtr returns a pointer to n, for building fixture rows.
func IntPtr(n int) *int { return &n }

// FloatPtr returns a pointer to f, for building fixture rows.
func FloatPtr(f float64) *float64 { return &f }
