package inline

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/kurasora/kurasora/source"
)

type Episode struct {
	Episode *source.Episode `json:"episode"`
	// Links is set when links were requested.
	Links *source.Links `json:"links,omitempty"`
}

type Result struct {
	// Source is the provider id.
	Source   string                 `json:"source"`
	Search   *source.SearchResponse `json:"search"`
	Load     *source.LoadResponse   `json:"load,omitempty"`
	Episodes []*Episode             `json:"episodes"`
}

type Output struct {
	Query  string    `json:"query"`
	Result []*Result `json:"result"`
}

func writeJson(out io.Writer, query string, results []*Result) error {
	if results == nil {
		results = []*Result{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&Output{Query: query, Result: results})
}
