// Package pathfind turns the gap report's missing skills into an ordered
// learning path, one resource per skill, backed by a video search API.
package pathfind

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/cache"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	cachePrefix = "learning_v2"
	cacheTTL    = 7 * 24 * time.Hour

	estimatedTime = "12-15 hours"
	notFoundTitle = "Resource not found"
)

// Video is one search result.
type Video struct {
	URL   string
	Title string
}

// VideoSearcher returns the top search result for a query, or nil when the
// search finds nothing.
type VideoSearcher interface {
	Search(ctx context.Context, query string) (*Video, error)
}

// Stage assembles the learning path.
type Stage struct {
	searcher VideoSearcher
	cache    *cache.Gateway
	logger   *zap.Logger
}

// New creates the pathfinding stage. cache may be nil.
func New(searcher VideoSearcher, c *cache.Gateway, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{searcher: searcher, cache: c, logger: logger}
}

// Name identifies the stage in logs, metrics, and traces.
func (s *Stage) Name() string { return "path" }

// Run builds one learning resource per missing skill. Searches run
// concurrently; the output preserves input skill order. A failed search drops
// that skill; a search that finds nothing keeps the skill with an empty
// resource URL. The whole-set result is cached under one compound key.
func (s *Stage) Run(ctx context.Context, st *types.State) error {
	skills := st.Gaps.MissingSkills()
	if len(skills) == 0 {
		st.LearningPath = []types.LearningResource{}
		s.logger.Info("no missing skills, learning path empty")
		return nil
	}

	key := compoundKey(skills)

	var cached []types.LearningResource
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		st.LearningPath = cached
		s.logger.Info("learning path served from cache", zap.Int("count", len(cached)))
		return nil
	}

	path := s.buildPath(ctx, skills)
	st.LearningPath = path

	if s.cache != nil {
		s.cache.Set(ctx, key, path, cacheTTL)
	}
	s.logger.Info("learning path built",
		zap.Int("skill_count", len(skills)),
		zap.Int("resource_count", len(path)))
	return nil
}

func (s *Stage) buildPath(ctx context.Context, skills []string) []types.LearningResource {
	results := make([]*types.LearningResource, len(skills))

	g, gctx := errgroup.WithContext(ctx)
	for i, skill := range skills {
		g.Go(func() error {
			video, err := s.searcher.Search(gctx, skill+" tutorial")
			if err != nil {
				s.logger.Warn("video search failed, skill dropped",
					zap.String("skill", skill), zap.Error(err))
				return nil
			}

			resource := types.LearningResource{
				Skill:         skill,
				Title:         notFoundTitle,
				Milestones:    milestones(skill),
				EstimatedTime: estimatedTime,
			}
			if video != nil {
				resource.ResourceURL = video.URL
				resource.Title = video.Title
			}
			results[i] = &resource
			return nil
		})
	}
	_ = g.Wait()

	path := make([]types.LearningResource, 0, len(skills))
	for _, r := range results {
		if r != nil {
			path = append(path, *r)
		}
	}
	return path
}

func milestones(skill string) []string {
	return []string{
		fmt.Sprintf("Master %s fundamentals", skill),
		fmt.Sprintf("Build a %s project", skill),
		fmt.Sprintf("Optimize %s for production", skill),
	}
}

// compoundKey hashes the sorted skill set so the key is order-independent and
// one entry covers the whole set.
func compoundKey(skills []string) string {
	sorted := make([]string, len(skills))
	copy(sorted, skills)
	sort.Strings(sorted)
	return cache.GenerateKey(cachePrefix, strings.Join(sorted, ","))
}
