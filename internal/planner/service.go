// Package planner owns the current study plan: it decides when a saved plan
// can be reused, keeps the completion set consistent with the plan, caches
// module guidance and persists every change.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/store"
	"github.com/Mahwas/Cognito/internal/study"
)

var (
	// ErrEmptyTopic is returned when a plan is requested for a blank topic.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrNoPlan is returned by operations that need a current plan.
	ErrNoPlan = errors.New("no study plan")

	// ErrUnknownModule is returned for module ids outside the current plan.
	ErrUnknownModule = errors.New("unknown module")
)

// PlanGenerator synthesizes a plan for a topic and a budget in minutes.
type PlanGenerator interface {
	Generate(ctx context.Context, topic string, budgetMinutes int) (study.Plan, error)
}

// ContentFetcher produces guidance for a single module.
type ContentFetcher interface {
	Fetch(ctx context.Context, in guidance.Input) guidance.Outcome
}

// Service is safe for concurrent use. Generation runs without the lock;
// mutations and the save that follows them run under it.
type Service struct {
	repo    store.StateRepo
	plans   PlanGenerator
	fetcher ContentFetcher
	log     *logger.Logger
	now     func() time.Time

	mu        sync.Mutex
	plan      *study.Plan
	completed []string
	epoch     int // bumped whenever the plan is replaced
	versions  map[string]int

	flights singleflight.Group
}

// NewService creates a planner over the given state repository.
func NewService(repo store.StateRepo, plans PlanGenerator, fetcher ContentFetcher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		plans:    plans,
		fetcher:  fetcher,
		log:      log.With("component", "planner"),
		now:      time.Now,
		versions: make(map[string]int),
	}
}

// Open returns a plan for topic. A saved plan for the same topic is reused
// together with its completion set; otherwise a new plan is generated and
// replaces whatever was saved.
func (s *Service) Open(ctx context.Context, topic string, budgetMinutes int) (study.Plan, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return study.Plan{}, ErrEmptyTopic
	}

	saved := s.loadSaved(ctx)
	if saved != nil && study.SameTopic(saved.Plan.Topic, topic) {
		s.log.Info("reusing saved plan", "topic", saved.Plan.Topic, "modules", len(saved.Plan.Modules))
		return s.restore(ctx, saved)
	}

	plan, err := s.plans.Generate(ctx, topic, budgetMinutes)
	if err != nil {
		return study.Plan{}, err
	}
	s.log.Info("generated plan", "topic", plan.Topic, "modules", len(plan.Modules), "budget_minutes", budgetMinutes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(&plan, nil)
	if err := s.saveLocked(ctx); err != nil {
		return plan.Clone(), err
	}
	return plan.Clone(), nil
}

// HasSaved reports whether a usable plan is persisted.
func (s *Service) HasSaved(ctx context.Context) bool {
	return s.loadSaved(ctx) != nil
}

// LoadSaved restores the persisted plan whatever its topic.
func (s *Service) LoadSaved(ctx context.Context) (study.Plan, error) {
	saved := s.loadSaved(ctx)
	if saved == nil {
		return study.Plan{}, ErrNoPlan
	}
	return s.restore(ctx, saved)
}

// Plan returns a snapshot of the current plan.
func (s *Service) Plan() (study.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return study.Plan{}, false
	}
	return s.plan.Clone(), true
}

// Completed returns the completed module ids in completion order.
func (s *Service) Completed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.completed))
	copy(out, s.completed)
	return out
}

// IsCompleted reports whether id is in the completion set.
func (s *Service) IsCompleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.completed {
		if c == id {
			return true
		}
	}
	return false
}

// MarkComplete adds id to the completion set. Marking a module twice is a
// no-op and does not write.
func (s *Service) MarkComplete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return ErrNoPlan
	}
	if !s.plan.HasModule(id) {
		return fmt.Errorf("%w: %s", ErrUnknownModule, id)
	}
	for _, c := range s.completed {
		if c == id {
			return nil
		}
	}
	s.completed = append(s.completed, id)
	return s.saveLocked(ctx)
}

// Reset forgets the current plan in memory and in storage.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(nil, nil)
	return s.repo.Clear(ctx)
}

func (s *Service) loadSaved(ctx context.Context) *store.PersistedState {
	saved, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("load saved plan", "error", err)
		return nil
	}
	if saved == nil || len(saved.Plan.Modules) == 0 {
		return nil
	}
	return saved
}

func (s *Service) restore(ctx context.Context, saved *store.PersistedState) (study.Plan, error) {
	plan := saved.Plan.Clone()
	completed := plan.FilterCompleted(saved.CompletedModules)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(&plan, completed)
	if len(completed) != len(saved.CompletedModules) {
		if err := s.saveLocked(ctx); err != nil {
			return plan.Clone(), err
		}
	}
	return plan.Clone(), nil
}

func (s *Service) replaceLocked(plan *study.Plan, completed []string) {
	s.plan = plan
	if completed == nil {
		completed = []string{}
	}
	s.completed = completed
	s.epoch++
	s.versions = make(map[string]int)
}

func (s *Service) saveLocked(ctx context.Context) error {
	if s.plan == nil {
		return nil
	}
	st := store.PersistedState{
		Plan:             s.plan.Clone(),
		CompletedModules: append([]string(nil), s.completed...),
		LastUpdated:      s.now().UnixMilli(),
	}
	if err := s.repo.Save(ctx, st); err != nil {
		s.log.Error("save plan", "error", err)
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func flightKey(epoch int, id string, version int) string {
	return strconv.Itoa(epoch) + "/" + id + "/" + strconv.Itoa(version)
}
