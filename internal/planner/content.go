package planner

import (
	"context"
	"fmt"

	"github.com/Mahwas/Cognito/internal/guidance"
	"github.com/Mahwas/Cognito/internal/study"
)

// ContentResult is the guidance shown for a module.
type ContentResult struct {
	Content study.Content
	State   guidance.State

	// Cached is true when the content came from the plan without a fetch.
	Cached bool
}

// Degraded reports whether the result should offer a manual retry.
func (r ContentResult) Degraded() bool {
	return r.State == guidance.SuccessDegraded || r.State == guidance.HardFailure
}

// ModuleContent returns the module's cached guidance, fetching and caching
// it on first use. Concurrent calls for the same module share one fetch.
func (s *Service) ModuleContent(ctx context.Context, id string) (ContentResult, error) {
	s.mu.Lock()
	m, err := s.moduleLocked(id)
	if err != nil {
		s.mu.Unlock()
		return ContentResult{}, err
	}
	if m.Content != nil {
		res := cachedResult(*m.Content)
		s.mu.Unlock()
		return res, nil
	}
	epoch, version, in := s.epoch, s.versions[id], inputFor(s.plan.Topic, m)
	s.mu.Unlock()

	return s.fetch(ctx, epoch, id, version, in), nil
}

// RetryModuleContent ignores any cached guidance and fetches it again.
// Results of fetches started before the retry are discarded.
func (s *Service) RetryModuleContent(ctx context.Context, id string) (ContentResult, error) {
	s.mu.Lock()
	m, err := s.moduleLocked(id)
	if err != nil {
		s.mu.Unlock()
		return ContentResult{}, err
	}
	s.versions[id]++
	epoch, version, in := s.epoch, s.versions[id], inputFor(s.plan.Topic, m)
	s.mu.Unlock()

	s.log.Info("retrying module content", "module", id, "version", version)
	return s.fetch(ctx, epoch, id, version, in), nil
}

func (s *Service) moduleLocked(id string) (*study.Module, error) {
	if s.plan == nil {
		return nil, ErrNoPlan
	}
	m, ok := s.plan.Module(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, id)
	}
	return m, nil
}

func (s *Service) fetch(ctx context.Context, epoch int, id string, version int, in guidance.Input) ContentResult {
	v, _, _ := s.flights.Do(flightKey(epoch, id, version), func() (any, error) {
		out := s.fetcher.Fetch(ctx, in)
		s.storeContent(ctx, epoch, id, version, out)
		return out, nil
	})
	out := v.(guidance.Outcome)
	return ContentResult{Content: out.Content.Clone(), State: out.State}
}

// storeContent writes a fetched outcome into its module unless the plan was
// replaced or a newer retry started meanwhile. Hard failures are not cached.
func (s *Service) storeContent(ctx context.Context, epoch int, id string, version int, out guidance.Outcome) {
	if out.State == guidance.HardFailure {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil || s.epoch != epoch || s.versions[id] != version {
		s.log.Debug("discarding stale module content", "module", id, "version", version)
		return
	}
	c := out.Content.Clone()
	if !s.plan.SetContent(id, &c) {
		return
	}
	if err := s.saveLocked(ctx); err != nil {
		s.log.Warn("module content kept in memory only", "module", id, "error", err)
	}
}

func cachedResult(c study.Content) ContentResult {
	state := guidance.Success
	if c.IsFallback {
		state = guidance.SuccessDegraded
	}
	return ContentResult{Content: c.Clone(), State: state, Cached: true}
}

func inputFor(planTopic string, m *study.Module) guidance.Input {
	return guidance.Input{
		PlanTopic: planTopic,
		Title:     m.Title,
		Topics:    append([]string(nil), m.Topics...),
		Minutes:   m.EstimatedMinutes,
	}
}
