//go:build e2e

package snapshot_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"table-reserve/internal/infra/snapshot"
	"table-reserve/internal/store"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// ------------------------------------------------------------
// コンテナ起動関数
// ------------------------------------------------------------
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
				"/var/lib/postgresql/data": "rw,size=256m", // PostgreSQLデータをRAMに載せてI/O削減
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off", // 耐久性よりパフォーマンスを優先
				"-c", "synchronous_commit=off", // 同期コミット無効
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = testcontainers.GenericContainer(context.Background(),
			testcontainers.GenericContainerRequest{
				ContainerRequest: req,
				Started:          true,
			})
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("PostgreSQLコンテナの終了に失敗しました", "error", err.Error())
				}
			}
		})
	})
}

func containerDSN(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	mappedPort, err := postgresTestContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "PostgreSQLコンテナ情報の取得に失敗")
	host, err := postgresTestContainer.Host(ctx)
	require.NoError(t, err, "PostgreSQLコンテナ情報の取得に失敗")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, mappedPort.Port())
}

func newPostgresStore(t *testing.T) *snapshot.PostgresStore {
	t.Helper()

	startPostgreSQLContainerOnce(t)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s, err := snapshot.NewPostgresStore(ctx, containerDSN(t))
	require.NoError(t, err, "スナップショットストアの初期化に失敗")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports absence, not error", func(t *testing.T) {
		s := newPostgresStore(t)

		_, ok, err := s.Load(ctx, "never-written")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		s := newPostgresStore(t)

		require.NoError(t, s.Save(ctx, "bookings", []byte(`[{"id":"res_1"}]`)))

		got, ok, err := s.Load(ctx, "bookings")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `[{"id":"res_1"}]`, string(got))
	})

	t.Run("upsert replaces the existing row", func(t *testing.T) {
		s := newPostgresStore(t)

		require.NoError(t, s.Save(ctx, "upsert-key", []byte("old")))
		require.NoError(t, s.Save(ctx, "upsert-key", []byte("new")))

		got, ok, err := s.Load(ctx, "upsert-key")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "new", string(got))
	})

	t.Run("reservation store survives a reconnect", func(t *testing.T) {
		first := newPostgresStore(t)

		payload := []byte(`[{"id":"res_1756600000000_deadbeef","customerName":"Alice Smith","phone":"555-123-4567","email":"alice@example.com","date":"2026-09-15","time":"19:00","partySize":2,"tablePreference":"window","createdAt":"2026-08-31T12:00:00Z","status":"confirmed"}]`)
		require.NoError(t, first.Save(ctx, store.SnapshotKey, payload))

		second, err := snapshot.NewPostgresStore(ctx, containerDSN(t))
		require.NoError(t, err)
		defer second.Close()

		st, err := store.New(ctx, second, slog.Default())
		require.NoError(t, err)

		records := st.List()
		require.Len(t, records, 1)
		assert.Equal(t, "Alice Smith", records[0].CustomerName().Value())
		assert.True(t, records[0].IsActive())
	})
}
