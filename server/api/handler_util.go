package api

import (
	"net/http"
	"strconv"
)

func valueModel(r *http.Request) string {
	if val := r.FormValue("model"); val != "" {
		return val
	}

	return ""
}

func valueFormat(r *http.Request) string {
	if val := r.FormValue("format"); val != "" {
		return val
	}

	return ""
}

// valueParameters maps form fields onto tool arguments. Absent fields stay absent
// so that defaults apply.
func valueParameters(r *http.Request) map[string]any {
	parameters := map[string]any{}

	for _, key := range []string{"query", "search_engine", "search_domain_filter", "search_recency_filter", "content_size"} {
		if _, ok := r.Form[key]; ok {
			parameters[key] = r.FormValue(key)
		}
	}

	if query, _ := parameters["query"].(string); query == "" {
		if q := r.FormValue("q"); q != "" {
			parameters["query"] = q
		}
	}

	if _, ok := r.Form["count"]; ok {
		val := r.FormValue("count")

		if count, err := strconv.Atoi(val); err == nil {
			parameters["count"] = count
		} else {
			parameters["count"] = val
		}
	}

	return parameters
}
