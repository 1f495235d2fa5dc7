package bigmodel

type SearchRequest struct {
	Query string `json:"search_query"`

	Engine string `json:"search_engine"`
	Intent bool   `json:"search_intent"`

	Count int `json:"count,omitempty"`

	DomainFilter  string `json:"search_domain_filter,omitempty"`
	RecencyFilter string `json:"search_recency_filter,omitempty"`

	ContentSize string `json:"content_size,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

type SearchResponse struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	RequestID string `json:"request_id,omitempty"`

	Intents []SearchIntent `json:"search_intent"`
	Results []SearchResult `json:"search_result"`
}

type SearchIntent struct {
	Query    string `json:"query"`
	Intent   string `json:"intent"`
	Keywords string `json:"keywords"`
}

type SearchResult struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	Link string `json:"link"`

	Media string `json:"media,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Refer string `json:"refer,omitempty"`

	PublishDate string `json:"publish_date,omitempty"`
}
