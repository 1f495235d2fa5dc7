package search

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"
)

const (
	MaxQueryLength = 70

	MinCount     = 1
	MaxCount     = 50
	DefaultCount = 10
)

type Request struct {
	Query string

	Engine searcher.Engine
	Count  int

	Domain  string
	Recency searcher.Recency

	ContentSize searcher.ContentSize
}

// ValidationError reports a tool argument that was rejected before any search was issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return tool.ErrInvalidParameters
}

// ParseRequest applies defaults to the raw tool arguments and validates them.
func ParseRequest(parameters map[string]any, defaultEngine searcher.Engine) (*Request, error) {
	if defaultEngine == "" {
		defaultEngine = searcher.EnginePro
	}

	r := &Request{
		Engine: defaultEngine,
		Count:  DefaultCount,

		Recency:     searcher.RecencyNoLimit,
		ContentSize: searcher.ContentSizeMedium,
	}

	query, ok := parameters["query"].(string)

	if !ok || query == "" {
		return nil, &ValidationError{Field: "query", Message: "a non-empty string is required"}
	}

	if n := utf8.RuneCountInString(query); n > MaxQueryLength {
		return nil, &ValidationError{Field: "query", Message: fmt.Sprintf("must be at most %d characters, got %d", MaxQueryLength, n)}
	}

	r.Query = query

	if val, ok := parameters["search_engine"]; ok && val != nil {
		engine, err := parseEnum("search_engine", val, searcher.Engines)

		if err != nil {
			return nil, err
		}

		r.Engine = engine
	}

	if val, ok := parameters["count"]; ok && val != nil {
		count, ok := parseInt(val)

		if !ok {
			return nil, &ValidationError{Field: "count", Message: "must be an integer"}
		}

		if count < MinCount || count > MaxCount {
			return nil, &ValidationError{Field: "count", Message: fmt.Sprintf("must be between %d and %d, got %d", MinCount, MaxCount, count)}
		}

		r.Count = count
	}

	if val, ok := parameters["search_domain_filter"]; ok && val != nil {
		domain, ok := val.(string)

		if !ok {
			return nil, &ValidationError{Field: "search_domain_filter", Message: "must be a string"}
		}

		r.Domain = domain
	}

	if val, ok := parameters["search_recency_filter"]; ok && val != nil {
		recency, err := parseEnum("search_recency_filter", val, searcher.Recencies)

		if err != nil {
			return nil, err
		}

		r.Recency = recency
	}

	if val, ok := parameters["content_size"]; ok && val != nil {
		size, err := parseEnum("content_size", val, searcher.ContentSizes)

		if err != nil {
			return nil, err
		}

		r.ContentSize = size
	}

	return r, nil
}

func (r *Request) Options() *searcher.SearchOptions {
	count := r.Count

	return &searcher.SearchOptions{
		Limit: &count,

		Engine: r.Engine,

		Domain:  r.Domain,
		Recency: r.Recency,

		ContentSize: r.ContentSize,
	}
}

func parseEnum[T ~string](field string, val any, allowed []T) (T, error) {
	s, ok := val.(string)

	if !ok || !slices.Contains(allowed, T(s)) {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("must be one of %v, got %v", allowed, val)}
	}

	return T(s), nil
}

func parseInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true

	case int64:
		return int(v), true

	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}

		// out of range either way, keep it representable
		v = math.Max(math.MinInt32, math.Min(math.MaxInt32, v))

		return int(v), true

	case json.Number:
		i, err := v.Int64()

		if err != nil {
			return 0, false
		}

		return int(i), true
	}

	return 0, false
}
