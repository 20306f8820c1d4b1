// Package scoring rates every sourced job against the candidate's résumé
// through a relevance model, ranks the listings, and records the best score
// as the overall match score.
package scoring

import (
	"context"
	"sort"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/cache"
	"github.com/IamHari01/NEXUS-TALENT/internal/metrics"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.uber.org/zap"
)

const (
	cachePrefix = "ats_v1"
	cacheTTL    = 24 * time.Hour

	// shortlistThreshold is the score at or above which a match counts as
	// shortlist-worthy in the business metrics.
	shortlistThreshold = 80
)

// Model scores a résumé against one job description on a 0..100 scale.
type Model interface {
	Score(ctx context.Context, resume, jobDescription string) (int, error)
}

// Stage scores sourced jobs. Scores are cached per résumé/description pair.
type Stage struct {
	model   Model
	cache   *cache.Gateway
	metrics *metrics.Collector
	logger  *zap.Logger
}

// New creates the scoring stage. cache and metrics may be nil.
func New(model Model, c *cache.Gateway, m *metrics.Collector, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{model: model, cache: c, metrics: m, logger: logger}
}

// Name identifies the stage in logs, metrics, and traces.
func (s *Stage) Name() string { return "score" }

// Run scores each job in the state, sorts the jobs best first, and sets
// MatchScore to the best score. With no résumé text or no jobs the score
// stays zero and no error is recorded. A model failure scores that job zero
// and records a state error; remaining jobs are still scored.
func (s *Stage) Run(ctx context.Context, st *types.State) error {
	if st.ResumeText == "" || len(st.Jobs) == 0 {
		s.logger.Info("nothing to score",
			zap.Int("job_count", len(st.Jobs)),
			zap.Bool("have_resume", st.ResumeText != ""))
		return nil
	}

	best := 0
	for i := range st.Jobs {
		score := s.scoreJob(ctx, st, &st.Jobs[i])
		st.Jobs[i].Score = score
		if score > best {
			best = score
		}
		if score >= shortlistThreshold {
			s.metrics.Shortlisted(st.JobTitle)
		}
	}

	sort.SliceStable(st.Jobs, func(i, j int) bool {
		return st.Jobs[i].Score > st.Jobs[j].Score
	})
	st.MatchScore = best

	s.logger.Info("jobs scored",
		zap.Int("job_count", len(st.Jobs)),
		zap.Int("match_score", best))
	return nil
}

func (s *Stage) scoreJob(ctx context.Context, st *types.State, job *types.Job) int {
	key := cache.GenerateKey(cachePrefix, st.ResumeText, job.Description)

	var cached int
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return clamp(cached)
	}

	score, err := s.model.Score(ctx, st.ResumeText, job.Description)
	if err != nil {
		s.logger.Warn("scoring model failed",
			zap.String("company", job.Company),
			zap.Error(err))
		st.SetError("scoring failed: " + err.Error())
		return 0
	}
	score = clamp(score)

	if s.cache != nil {
		s.cache.Set(ctx, key, score, cacheTTL)
	}
	return score
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
