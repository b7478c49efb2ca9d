package study

// Plan is the full ordered curriculum for one topic.
type Plan struct {
	Topic   string   `json:"topic"`
	Modules []Module `json:"modules"`
}

// Module is one curriculum unit with a time budget and subtopics.
type Module struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Topics           []string `json:"topics"`

	// Content is filled lazily the first time the module is opened.
	Content *Content `json:"content,omitempty"`
}

// Content is the cached guidance for a module.
type Content struct {
	Advice    string     `json:"advice"`
	Resources []Resource `json:"resources"`

	// IsFallback is true when the guidance was produced without live
	// search grounding after the grounded attempt failed.
	IsFallback bool `json:"isFallback"`
}

// Resource is an external link attached to module guidance.
type Resource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}
