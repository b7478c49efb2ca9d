package planner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahwas/Cognito/internal/curriculum"
	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/store"
	"github.com/Mahwas/Cognito/internal/study"
)

// --- fakes ---

type memRepo struct {
	mu      sync.Mutex
	state   *store.PersistedState
	saves   int
	saveErr error
}

func (r *memRepo) Load(_ context.Context) (*store.PersistedState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, nil
	}
	cp := *r.state
	cp.Plan = r.state.Plan.Clone()
	cp.CompletedModules = append([]string(nil), r.state.CompletedModules...)
	return &cp, nil
}

func (r *memRepo) Save(_ context.Context, st store.PersistedState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.state = &st
	return nil
}

func (r *memRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = nil
	return nil
}

func (r *memRepo) saved() store.PersistedState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.state
}

type fakeGenerator struct {
	calls atomic.Int32
	plan  study.Plan
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, topic string, _ int) (study.Plan, error) {
	g.calls.Add(1)
	if g.err != nil {
		return study.Plan{}, g.err
	}
	p := g.plan.Clone()
	p.Topic = topic
	return p, nil
}

type fakeFetcher struct {
	calls atomic.Int32
	gate  chan struct{}

	mu       sync.Mutex
	outcomes []guidance.Outcome
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ guidance.Input) guidance.Outcome {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.outcomes) == 0 {
		return guidance.Outcome{State: guidance.Success, Content: study.Content{Advice: "live", Resources: []study.Resource{}}}
	}
	out := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	return out
}

func twoModulePlan(topic string) study.Plan {
	return study.Plan{
		Topic: topic,
		Modules: []study.Module{
			{ID: "m1", Title: "One", EstimatedMinutes: 60, Topics: []string{"a"}},
			{ID: "m2", Title: "Two", EstimatedMinutes: 60, Topics: []string{"b"}},
		},
	}
}

func newTestService(repo *memRepo, gen *fakeGenerator, f *fakeFetcher) *Service {
	s := NewService(repo, gen, f, nil)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

// --- Open ---

func TestOpen_EmptyTopicRejectedBeforeIO(t *testing.T) {
	repo := &memRepo{}
	gen := &fakeGenerator{plan: twoModulePlan("")}
	s := newTestService(repo, gen, &fakeFetcher{})

	for _, topic := range []string{"", "   ", "\t\n"} {
		_, err := s.Open(context.Background(), topic, 120)
		assert.ErrorIs(t, err, ErrEmptyTopic)
	}
	assert.Zero(t, gen.calls.Load())
	assert.Zero(t, repo.saves)
}

func TestOpen_ReusesSavedPlanIgnoringCaseAndWhitespace(t *testing.T) {
	repo := &memRepo{state: &store.PersistedState{
		Plan:             twoModulePlan("Rust Ownership"),
		CompletedModules: []string{"m1"},
	}}
	gen := &fakeGenerator{plan: twoModulePlan("")}
	s := newTestService(repo, gen, &fakeFetcher{})

	plan, err := s.Open(context.Background(), "  rust OWNERSHIP ", 120)
	require.NoError(t, err)

	assert.Zero(t, gen.calls.Load())
	assert.Equal(t, "Rust Ownership", plan.Topic)
	assert.Equal(t, []string{"m1"}, s.Completed())
	assert.Zero(t, repo.saves)
}

func TestOpen_DifferentTopicGeneratesAndDiscardsCompletion(t *testing.T) {
	repo := &memRepo{state: &store.PersistedState{
		Plan:             twoModulePlan("Rust"),
		CompletedModules: []string{"m1", "m2"},
	}}
	gen := &fakeGenerator{plan: twoModulePlan("")}
	s := newTestService(repo, gen, &fakeFetcher{})

	plan, err := s.Open(context.Background(), "Go", 120)
	require.NoError(t, err)

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, "Go", plan.Topic)
	assert.Empty(t, s.Completed())

	saved := repo.saved()
	assert.Equal(t, "Go", saved.Plan.Topic)
	assert.NotNil(t, saved.CompletedModules)
	assert.Empty(t, saved.CompletedModules)
	assert.Equal(t, int64(1700000000000), saved.LastUpdated)
}

func TestOpen_NoSavedStateGenerates(t *testing.T) {
	repo := &memRepo{}
	gen := &fakeGenerator{plan: twoModulePlan("")}
	s := newTestService(repo, gen, &fakeFetcher{})

	_, err := s.Open(context.Background(), "Go", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, 1, repo.saves)
}

func TestOpen_GenerationFailureKeepsPreviousState(t *testing.T) {
	repo := &memRepo{state: &store.PersistedState{Plan: twoModulePlan("Rust"), CompletedModules: []string{"m1"}}}
	gen := &fakeGenerator{err: errors.New("quota")}
	s := newTestService(repo, gen, &fakeFetcher{})

	_, err := s.Open(context.Background(), "Go", 120)
	require.Error(t, err)
	assert.Equal(t, "Rust", repo.saved().Plan.Topic)
	assert.Equal(t, []string{"m1"}, repo.saved().CompletedModules)
}

func TestOpen_FiltersStaleCompletionOnReuse(t *testing.T) {
	repo := &memRepo{state: &store.PersistedState{
		Plan:             twoModulePlan("Rust"),
		CompletedModules: []string{"gone", "m2", "m2"},
	}}
	s := newTestService(repo, &fakeGenerator{}, &fakeFetcher{})

	_, err := s.Open(context.Background(), "rust", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, s.Completed())
	assert.Equal(t, []string{"m2"}, repo.saved().CompletedModules)
}

func TestOpen_MalformedSavedStateTreatedAsAbsent(t *testing.T) {
	db, err := store.Open(t.TempDir() + "/cognito.db")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.DB().Exec(`INSERT INTO app_state (key, value, updated_at) VALUES ('cognito_state', '{not json', 0)`)
	require.NoError(t, err)

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"topic":"Go","modules":[{"id":"a","title":"A","description":"","estimatedMinutes":60,"topics":[]}]}`,
	)})
	s := NewService(db.StateRepo(nil), curriculum.NewGenerator(mock, curriculum.DefaultConfig()), &fakeFetcher{}, nil)

	plan, err := s.Open(context.Background(), "Go", 60)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Len(t, plan.Modules, 1)

	reloaded, err := db.StateRepo(nil).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "Go", reloaded.Plan.Topic)
}

// --- LoadSaved / HasSaved / Reset ---

func TestLoadSaved(t *testing.T) {
	repo := &memRepo{}
	s := newTestService(repo, &fakeGenerator{}, &fakeFetcher{})

	assert.False(t, s.HasSaved(context.Background()))
	_, err := s.LoadSaved(context.Background())
	assert.ErrorIs(t, err, ErrNoPlan)

	repo.state = &store.PersistedState{Plan: twoModulePlan("Rust"), CompletedModules: []string{"m2", "x"}}
	assert.True(t, s.HasSaved(context.Background()))

	plan, err := s.LoadSaved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rust", plan.Topic)
	assert.Equal(t, []string{"m2"}, s.Completed())
}

func TestReset(t *testing.T) {
	repo := &memRepo{state: &store.PersistedState{Plan: twoModulePlan("Rust")}}
	s := newTestService(repo, &fakeGenerator{}, &fakeFetcher{})
	_, err := s.LoadSaved(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Reset(context.Background()))
	_, ok := s.Plan()
	assert.False(t, ok)
	assert.False(t, s.HasSaved(context.Background()))
}

// --- MarkComplete ---

func TestMarkComplete(t *testing.T) {
	repo := &memRepo{}
	s := newTestService(repo, &fakeGenerator{plan: twoModulePlan("")}, &fakeFetcher{})

	err := s.MarkComplete(context.Background(), "m1")
	assert.ErrorIs(t, err, ErrNoPlan)

	_, err = s.Open(context.Background(), "Go", 120)
	require.NoError(t, err)
	savesAfterOpen := repo.saves

	require.NoError(t, s.MarkComplete(context.Background(), "m2"))
	require.NoError(t, s.MarkComplete(context.Background(), "m2"))
	assert.ErrorIs(t, s.MarkComplete(context.Background(), "nope"), ErrUnknownModule)

	assert.Equal(t, []string{"m2"}, s.Completed())
	assert.True(t, s.IsCompleted("m2"))
	assert.False(t, s.IsCompleted("m1"))
	assert.Equal(t, savesAfterOpen+1, repo.saves)
	assert.Equal(t, []string{"m2"}, repo.saved().CompletedModules)
}

func TestMarkComplete_SaveError(t *testing.T) {
	repo := &memRepo{}
	s := newTestService(repo, &fakeGenerator{plan: twoModulePlan("")}, &fakeFetcher{})
	_, err := s.Open(context.Background(), "Go", 120)
	require.NoError(t, err)

	repo.saveErr = errors.New("disk full")
	err = s.MarkComplete(context.Background(), "m1")
	assert.ErrorContains(t, err, "save plan")
}

func TestPlanSnapshotIsIndependent(t *testing.T) {
	s := newTestService(&memRepo{}, &fakeGenerator{plan: twoModulePlan("")}, &fakeFetcher{})
	_, err := s.Open(context.Background(), "Go", 120)
	require.NoError(t, err)

	snap, ok := s.Plan()
	require.True(t, ok)
	snap.Modules[0].Title = "changed"

	again, _ := s.Plan()
	assert.Equal(t, "One", again.Modules[0].Title)
}
