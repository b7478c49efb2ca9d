package study

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeTopic returns the comparison form of a topic.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// SameTopic reports whether two topics identify the same plan. Leading and
// trailing whitespace and letter case are ignored.
func SameTopic(a, b string) bool {
	return NormalizeTopic(a) == NormalizeTopic(b)
}

// Module returns the module with the given id.
func (p *Plan) Module(id string) (*Module, bool) {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i], true
		}
	}
	return nil, false
}

// HasModule reports whether id belongs to the plan.
func (p *Plan) HasModule(id string) bool {
	_, ok := p.Module(id)
	return ok
}

// SetContent replaces the content of a single module. Sibling modules are
// left untouched. Returns false if the module does not exist.
func (p *Plan) SetContent(id string, c *Content) bool {
	m, ok := p.Module(id)
	if !ok {
		return false
	}
	m.Content = c
	return true
}

// TotalMinutes sums the advisory module durations.
func (p *Plan) TotalMinutes() int {
	total := 0
	for _, m := range p.Modules {
		total += m.EstimatedMinutes
	}
	return total
}

// Normalize repairs a freshly generated plan in place: empty ids are
// synthesized, duplicate ids are suffixed and non-positive durations are
// clamped to one minute.
func (p *Plan) Normalize(now time.Time) {
	seen := make(map[string]bool, len(p.Modules))
	for i := range p.Modules {
		m := &p.Modules[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			m.ID = fmt.Sprintf("mod-%d-%d", now.UnixMilli(), i)
		}
		if seen[m.ID] {
			base := m.ID
			for n := 2; seen[m.ID]; n++ {
				m.ID = fmt.Sprintf("%s-%d", base, n)
			}
		}
		seen[m.ID] = true

		if m.EstimatedMinutes <= 0 {
			m.EstimatedMinutes = 1
		}
		if m.Topics == nil {
			m.Topics = []string{}
		}
	}
}

// FilterCompleted returns the ids in completed that belong to the plan,
// without duplicates and in their original order.
func (p *Plan) FilterCompleted(completed []string) []string {
	out := make([]string, 0, len(completed))
	seen := make(map[string]bool, len(completed))
	for _, id := range completed {
		if seen[id] || !p.HasModule(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() Plan {
	out := Plan{Topic: p.Topic, Modules: make([]Module, len(p.Modules))}
	for i, m := range p.Modules {
		cp := m
		if m.Topics != nil {
			cp.Topics = make([]string, len(m.Topics))
			copy(cp.Topics, m.Topics)
		}
		if m.Content != nil {
			c := m.Content.Clone()
			cp.Content = &c
		}
		out.Modules[i] = cp
	}
	return out
}

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	if c.Resources != nil {
		res := make([]Resource, len(c.Resources))
		copy(res, c.Resources)
		c.Resources = res
	}
	return c
}

// FormatMinutes renders a duration the way the plan overview shows it:
// "2h 5m" from an hour upwards, "45m" below.
func FormatMinutes(total int) string {
	if total >= 60 {
		return fmt.Sprintf("%dh %dm", total/60, total%60)
	}
	return fmt.Sprintf("%dm", total)
}
