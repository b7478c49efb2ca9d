package guidance

import (
	"net/url"
	"strings"

	"github.com/Mahwas/Cognito/internal/llm"
	"github.com/Mahwas/Cognito/internal/study"
)

// MaxResources caps the resources kept per module.
const MaxResources = 5

const defaultResourceTitle = "External Resource"

// resourcesFromCitations maps grounding citations to resources, keeping the
// first occurrence of each URL and at most MaxResources entries.
func resourcesFromCitations(cites []llm.Citation) []study.Resource {
	out := make([]study.Resource, 0, min(len(cites), MaxResources))
	seen := make(map[string]bool, len(cites))
	for _, c := range cites {
		if len(out) == MaxResources {
			break
		}
		u := strings.TrimSpace(c.URI)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = defaultResourceTitle
		}
		out = append(out, study.Resource{Title: title, URL: u, Source: hostname(u)})
	}
	return out
}

// hostname returns the host part of rawURL without port, or rawURL itself
// when it does not parse as an absolute URL.
func hostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	return parsed.Hostname()
}
