//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/request"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/infra/repository"
	"lendhub/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerHost string
	containerPort nat.Port
)

func startPostgres(t *testing.T) {
	t.Helper()
	containerOnce.Do(func() {
		ctx := context.Background()
		req := testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
			Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					pgUser, pgPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}

		var err error
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")

		containerHost, err = container.Host(ctx)
		require.NoError(t, err)
		containerPort, err = container.MappedPort(ctx, "5432/tcp")
		require.NoError(t, err)
	})
}

// newTestPool creates a fresh database per test so tests stay independent.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		pgUser, pgPassword, containerHost, containerPort.Port())
	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err)
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err)

	cfg := config.DBConfig{
		Host:     containerHost,
		Port:     containerPort.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}
	pool, cleanup, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	applyMigrations(t, pool)
	return pool
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Package dirs are the working dir during go test; walk up to the repo root.
	candidates := []string{
		"migrations/001_init.sql",
		filepath.Join("..", "..", "..", "migrations", "001_init.sql"),
	}
	var sqlContent []byte
	var readErr error
	for _, cand := range candidates {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	require.NoError(t, readErr, "failed to locate migration file")

	_, err := pool.Exec(ctx, string(sqlContent))
	require.NoError(t, err)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	t.Helper()
	u, err := user.NewUser(name, email)
	require.NoError(t, err)
	id, err := repository.NewUserRepository(pool).Create(context.Background(), u)
	require.NoError(t, err)
	return id
}

func seedItem(t *testing.T, pool *pgxpool.Pool, ownerID int64, name string, available bool) int64 {
	t.Helper()
	it, err := item.NewItem(ownerID, name, name+" description", available, nil)
	require.NoError(t, err)
	id, err := repository.NewItemRepository(pool).Create(context.Background(), it)
	require.NoError(t, err)
	return id
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := repository.NewUserRepository(pool)

	id := seedUser(t, pool, "alice", "alice@example.com")

	t.Run("duplicate email violates the unique index", func(t *testing.T) {
		u, err := user.NewUser("bob", "alice@example.com")
		require.NoError(t, err)

		_, err = repo.Create(ctx, u)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("email taken", func(t *testing.T) {
		taken, err := repo.EmailTaken(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.EmailTaken(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("update round-trips", func(t *testing.T) {
		u, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		u.Rename("alicia")
		require.NoError(t, repo.Update(ctx, u))

		u, err = repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alicia", u.Name())
	})

	t.Run("delete then find is not found", func(t *testing.T) {
		victimID := seedUser(t, pool, "victim", "victim@example.com")
		require.NoError(t, repo.Delete(ctx, victimID))

		_, err := repo.FindByID(ctx, victimID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := repository.NewBookingRepository(pool)

	ownerID := seedUser(t, pool, "owner", "owner@example.com")
	bookerID := seedUser(t, pool, "booker", "booker@example.com")
	itemID := seedItem(t, pool, ownerID, "drill", true)

	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	period, err := booking.NewPeriod(start, start.Add(24*time.Hour))
	require.NoError(t, err)
	id, err := repo.Create(ctx, booking.NewBooking(itemID, bookerID, period))
	require.NoError(t, err)

	t.Run("conditional update decides a waiting booking once", func(t *testing.T) {
		b, err := repo.UpdateStatusIfWaiting(ctx, id, booking.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, b.Status())

		_, err = repo.UpdateStatusIfWaiting(ctx, id, booking.StatusRejected)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		_, err := repo.UpdateStatusIfWaiting(ctx, 9999, booking.StatusApproved)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("find by item in insertion order", func(t *testing.T) {
		period2, err := booking.NewPeriod(start.Add(48*time.Hour), start.Add(72*time.Hour))
		require.NoError(t, err)
		id2, err := repo.Create(ctx, booking.NewBooking(itemID, bookerID, period2))
		require.NoError(t, err)

		all, err := repo.FindByItem(ctx, itemID)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, id, all[0].ID())
		assert.Equal(t, id2, all[1].ID())
	})
}

func TestBookingReadStore(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	store := repository.NewBookingReadStore(pool)

	ownerID := seedUser(t, pool, "owner", "owner@example.com")
	bookerID := seedUser(t, pool, "booker", "booker@example.com")
	itemID := seedItem(t, pool, ownerID, "drill", true)

	repo := repository.NewBookingRepository(pool)
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	period, err := booking.NewPeriod(start, start.Add(24*time.Hour))
	require.NoError(t, err)
	id, err := repo.Create(ctx, booking.NewBooking(itemID, bookerID, period))
	require.NoError(t, err)

	t.Run("view joins item and booker", func(t *testing.T) {
		view, err := store.FindByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusWaiting, view.Status)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, ownerID, view.Item.OwnerID)
		assert.Equal(t, "booker", view.Booker.Name)
	})
}

func TestItemReadStore(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	store := repository.NewItemReadStore(pool)

	ownerID := seedUser(t, pool, "owner", "owner@example.com")
	drillID := seedItem(t, pool, ownerID, "Drill", true)
	seedItem(t, pool, ownerID, "broken drill", false)
	seedItem(t, pool, ownerID, "saw", true)

	t.Run("search matches case-insensitively and skips unavailable", func(t *testing.T) {
		views, err := store.Search(ctx, "dRiLl")
		require.NoError(t, err)

		require.Len(t, views, 1)
		assert.Equal(t, drillID, views[0].ID)
	})

	t.Run("list by owner in id order", func(t *testing.T) {
		views, err := store.ListByOwner(ctx, ownerID)
		require.NoError(t, err)

		require.Len(t, views, 3)
		assert.Equal(t, drillID, views[0].ID)
	})

	t.Run("count by owner", func(t *testing.T) {
		n, err := store.CountByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})
}

func TestRequestReadStore(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	store := repository.NewRequestReadStore(pool)
	repo := repository.NewRequestRepository(pool)

	aliceID := seedUser(t, pool, "alice", "alice@example.com")
	bobID := seedUser(t, pool, "bob", "bob@example.com")

	created := time.Now().UTC().Truncate(time.Second)
	req, err := request.NewItemRequest(aliceID, "need a drill", created)
	require.NoError(t, err)
	requestID, err := repo.Create(ctx, req)
	require.NoError(t, err)

	t.Run("unanswered request carries an empty items slice", func(t *testing.T) {
		view, err := store.FindByID(ctx, requestID)
		require.NoError(t, err)

		assert.NotNil(t, view.Items)
		assert.Empty(t, view.Items)
	})

	t.Run("answering item is attached", func(t *testing.T) {
		it, err := item.NewItem(bobID, "drill", "cordless", true, &requestID)
		require.NoError(t, err)
		itemID, err := repository.NewItemRepository(pool).Create(ctx, it)
		require.NoError(t, err)

		view, err := store.FindByID(ctx, requestID)
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, itemID, view.Items[0].ID)
		assert.Equal(t, bobID, view.Items[0].OwnerID)
	})

	t.Run("others excludes the requestor", func(t *testing.T) {
		own, err := store.ListOthers(ctx, aliceID, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, own)

		others, err := store.ListOthers(ctx, bobID, 0, 10)
		require.NoError(t, err)
		require.Len(t, others, 1)
		assert.Equal(t, requestID, others[0].ID)
	})
}
