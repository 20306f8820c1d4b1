// Package sourcing finds candidate job listings for the target role through a
// three-tier ladder: cache, vector search, then an external job API. The
// first tier that yields an acceptable result wins.
package sourcing

import (
	"context"
	"strings"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/cache"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.uber.org/zap"
)

const (
	cachePrefix = "jobs_v3"
	cacheTTL    = 30 * time.Minute

	// minVectorHits is the acceptance floor for the vector tier. Fewer hits
	// than this means the index has too little signal for the role and the
	// ladder falls through to the external API.
	minVectorHits = 3

	// skillsKeyLimit bounds the skills portion of the cache key.
	skillsKeyLimit = 50
)

// VectorSearcher queries the vector index for listings similar to the role.
type VectorSearcher interface {
	Search(ctx context.Context, query string) ([]types.Job, error)
}

// JobFetcher retrieves listings from an external job board API.
type JobFetcher interface {
	Fetch(ctx context.Context, title, location string) ([]types.Job, error)
}

// Stage sources job listings for the target role.
type Stage struct {
	vector  VectorSearcher
	fetcher JobFetcher
	cache   *cache.Gateway
	logger  *zap.Logger
}

// New creates the sourcing stage. vector and cache may be nil; fetcher is the
// tier of last resort and must be set.
func New(vector VectorSearcher, fetcher JobFetcher, c *cache.Gateway, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{vector: vector, fetcher: fetcher, cache: c, logger: logger}
}

// Name identifies the stage in logs, metrics, and traces.
func (s *Stage) Name() string { return "source" }

// Run walks the sourcing ladder and writes the accepted listings to the
// state. Cache hits are re-tagged as cached; vector results are accepted only
// above the hit floor and are never written back to the cache; external
// results are always accepted, cached, and an external failure degrades to an
// empty list with a state error.
func (s *Stage) Run(ctx context.Context, st *types.State) error {
	key := s.cacheKey(st)

	var cached []types.Job
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		for i := range cached {
			cached[i].Source = types.SourceCache
		}
		st.Jobs = cached
		s.logger.Info("jobs served from cache", zap.Int("count", len(cached)))
		return nil
	}

	if jobs, ok := s.searchVector(ctx, st); ok {
		st.Jobs = jobs
		return nil
	}

	jobs, err := s.fetcher.Fetch(ctx, st.JobTitle, st.Location)
	if err != nil {
		s.logger.Warn("external job fetch failed", zap.Error(err))
		st.Jobs = []types.Job{}
		st.SetError("job sourcing failed: " + err.Error())
		return nil
	}
	for i := range jobs {
		jobs[i].Source = types.SourceExternal
	}
	st.Jobs = jobs

	if s.cache != nil {
		s.cache.Set(ctx, key, jobs, cacheTTL)
	}
	s.logger.Info("jobs fetched from external api", zap.Int("count", len(jobs)))
	return nil
}

func (s *Stage) searchVector(ctx context.Context, st *types.State) ([]types.Job, bool) {
	if s.vector == nil {
		return nil, false
	}

	jobs, err := s.vector.Search(ctx, st.JobTitle+" "+st.Location)
	if err != nil {
		s.logger.Warn("vector search failed", zap.Error(err))
		return nil, false
	}
	if len(jobs) < minVectorHits {
		s.logger.Info("vector tier below hit floor", zap.Int("hits", len(jobs)))
		return nil, false
	}

	for i := range jobs {
		jobs[i].Source = types.SourceVector
	}
	s.logger.Info("jobs served from vector index", zap.Int("count", len(jobs)))
	return jobs, true
}

func (s *Stage) cacheKey(st *types.State) string {
	var skills []string
	if st.Profile != nil {
		skills = st.Profile.Skills
	}
	joined := strings.Join(skills, ",")
	runes := []rune(joined)
	if len(runes) > skillsKeyLimit {
		joined = string(runes[:skillsKeyLimit])
	}
	return cache.GenerateKey(cachePrefix, st.JobTitle, st.Location, joined)
}
