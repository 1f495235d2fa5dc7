package api

import (
	"fmt"
	"net/http"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
	"github.com/adrianliechti/wingman-search/pkg/tool"
	"github.com/adrianliechti/wingman-search/pkg/tool/search"
)

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", tool.ErrInvalidParameters, err))
		return
	}

	p, err := h.Searcher(valueModel(r))

	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", tool.ErrInvalidParameters, err))
		return
	}

	parameters := valueParameters(r)

	req, err := search.ParseRequest(parameters, "")

	if err != nil {
		writeError(w, r, err)
		return
	}

	// leave the engine to the searcher's own default
	if _, ok := parameters["search_engine"]; !ok {
		req.Engine = ""
	}

	results, err := p.Search(r.Context(), req.Query, req.Options())

	if err != nil {
		writeError(w, r, err)
		return
	}

	if valueFormat(r) == "json" {
		writeJson(w, toSearchResults(results))
		return
	}

	writeText(w, search.Digest(req.Query, results))
}

type SearchResult struct {
	Source string `json:"source,omitempty"`

	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	Media       string `json:"media,omitempty"`
	PublishDate string `json:"publish_date,omitempty"`
}

func toSearchResults(results []searcher.Result) []SearchResult {
	result := make([]SearchResult, 0, len(results))

	for _, r := range results {
		result = append(result, SearchResult{
			Source: r.Source,

			Title:   r.Title,
			Content: r.Content,

			Media:       r.Media,
			PublishDate: r.PublishDate,
		})
	}

	return result
}
