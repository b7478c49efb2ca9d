package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stateRepoContract runs the behaviour every StateRepo must share.
func stateRepoContract(t *testing.T, repo StateRepo, corrupt func(t *testing.T)) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx))
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		want := PersistedState{Plan: samplePlan(), CompletedModules: []string{"m2"}, LastUpdated: 1700000000000}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("overwrite", func(t *testing.T) {
		first := PersistedState{Plan: samplePlan(), LastUpdated: 1}
		second := PersistedState{Plan: samplePlan(), CompletedModules: []string{"m1", "m2"}, LastUpdated: 2}
		second.Plan.Topic = "Go Generics"
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Go Generics", got.Plan.Topic)
		assert.Equal(t, []string{"m1", "m2"}, got.CompletedModules)
	})

	t.Run("malformed is absent", func(t *testing.T) {
		corrupt(t)
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, PersistedState{Plan: samplePlan()}))
		require.NoError(t, repo.Clear(ctx))
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSQLiteStateRepo(t *testing.T) {
	s := openTestStore(t)
	stateRepoContract(t, s.StateRepo(nil), func(t *testing.T) {
		_, err := s.DB().Exec(`UPDATE app_state SET value = '{"plan": [oops' WHERE key = ?`, stateKey)
		require.NoError(t, err)
	})
}

func TestSQLiteStateRepo_WireFormat(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.StateRepo(nil).Save(ctx, PersistedState{Plan: samplePlan(), LastUpdated: 42}))

	var raw string
	require.NoError(t, s.DB().QueryRow(`SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw))
	assert.Contains(t, raw, `"completedModules":[]`)
	assert.Contains(t, raw, `"lastUpdated":42`)
	assert.Contains(t, raw, `"estimatedMinutes":60`)
	assert.Contains(t, raw, `"isFallback":true`)
}

func TestSQLiteStateRepo_MissingFieldsDecodeToZero(t *testing.T) {
	s := openTestStore(t)
	_, err := s.DB().Exec(`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, 0)`,
		stateKey, `{"plan":{"topic":"Old","modules":[{"id":"a","title":"A"}]}}`)
	require.NoError(t, err)

	got, err := s.StateRepo(nil).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Old", got.Plan.Topic)
	assert.Nil(t, got.CompletedModules)
	assert.Nil(t, got.Plan.Modules[0].Content)
}

func TestRedisStateRepo(t *testing.T) {
	addr := os.Getenv("COGNITO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COGNITO_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	key := "cognito:test:" + time.Now().Format("150405.000000")

	repo, err := NewRedisStateRepo(ctx, RedisOptions{Addr: addr, Key: key}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Clear(ctx)
		_ = repo.Close()
	})

	stateRepoContract(t, repo, func(t *testing.T) {
		require.NoError(t, repo.rdb.Set(ctx, key, "not json", 0).Err())
	})
}

func TestNewRedisStateRepo_RequiresAddr(t *testing.T) {
	_, err := NewRedisStateRepo(context.Background(), RedisOptions{}, nil)
	assert.Error(t, err)
}
