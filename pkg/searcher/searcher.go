package searcher

import (
	"context"
	"fmt"
)

type Provider interface {
	Search(ctx context.Context, query string, options *SearchOptions) ([]Result, error)
}

type SearchOptions struct {
	Limit *int

	Engine Engine

	Domain  string
	Recency Recency

	ContentSize ContentSize
}

type Result struct {
	Source string

	Title   string
	Content string

	Media string
	Icon  string
	Refer string

	PublishDate string
}

type Engine string

const (
	EngineStandard Engine = "search_std"
	EnginePro      Engine = "search_pro"
	EngineSogou    Engine = "search_pro_sogou"
	EngineQuark    Engine = "search_pro_quark"
	EngineJina     Engine = "search_pro_jina"
	EngineBing     Engine = "search_pro_bing"
)

var Engines = []Engine{
	EngineStandard,
	EnginePro,
	EngineSogou,
	EngineQuark,
	EngineJina,
	EngineBing,
}

type Recency string

const (
	RecencyDay     Recency = "oneDay"
	RecencyWeek    Recency = "oneWeek"
	RecencyMonth   Recency = "oneMonth"
	RecencyYear    Recency = "oneYear"
	RecencyNoLimit Recency = "noLimit"
)

var Recencies = []Recency{
	RecencyDay,
	RecencyWeek,
	RecencyMonth,
	RecencyYear,
	RecencyNoLimit,
}

type ContentSize string

const (
	ContentSizeMedium ContentSize = "medium"
	ContentSizeHigh   ContentSize = "high"
)

var ContentSizes = []ContentSize{
	ContentSizeMedium,
	ContentSizeHigh,
}

// StatusError is returned when the search provider answers with a non-success status.
// Body holds the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Body)
}
