package sourcing

import (
	"context"
	"fmt"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
)

const (
	jobClass = "Job"

	// hybridAlpha balances keyword and vector relevance in the hybrid query.
	hybridAlpha = 0.75
	searchLimit = 5
)

// WeaviateSearcher queries a Weaviate index of job listings with hybrid
// keyword/vector search.
type WeaviateSearcher struct {
	client *weaviate.Client
}

// NewWeaviateSearcher connects to a Weaviate instance at host (for example
// "localhost:8080") over the given scheme.
func NewWeaviateSearcher(host, scheme string) *WeaviateSearcher {
	return &WeaviateSearcher{
		client: weaviate.New(weaviate.Config{Host: host, Scheme: scheme}),
	}
}

// Search implements VectorSearcher.
func (w *WeaviateSearcher) Search(ctx context.Context, query string) ([]types.Job, error) {
	hybrid := w.client.GraphQL().HybridArgumentBuilder().
		WithQuery(query).
		WithAlpha(hybridAlpha)

	resp, err := w.client.GraphQL().Get().
		WithClassName(jobClass).
		WithFields(
			graphql.Field{Name: "title"},
			graphql.Field{Name: "company"},
			graphql.Field{Name: "location"},
			graphql.Field{Name: "description"},
			graphql.Field{Name: "link"},
		).
		WithHybrid(hybrid).
		WithLimit(searchLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("hybrid search failed: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("hybrid search failed: %s", resp.Errors[0].Message)
	}

	return decodeHits(resp.Data["Get"])
}

// decodeHits walks the GraphQL response shape {Get: {Job: [...]}}. Records
// missing expected fields are kept with those fields empty.
func decodeHits(data any) ([]types.Job, error) {
	get, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing Get")
	}
	hits, ok := get[jobClass].([]any)
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing %s class", jobClass)
	}

	jobs := make([]types.Job, 0, len(hits))
	for _, hit := range hits {
		fields, ok := hit.(map[string]any)
		if !ok {
			continue
		}
		jobs = append(jobs, types.Job{
			Title:       stringField(fields, "title"),
			Company:     stringField(fields, "company"),
			Location:    stringField(fields, "location"),
			Description: stringField(fields, "description"),
			Link:        stringField(fields, "link"),
		})
	}
	return jobs, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}
