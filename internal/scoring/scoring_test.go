package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/cache"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	scores map[string]int
	err    error
	calls  int
}

func (m *fakeModel) Score(_ context.Context, _, jd string) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[jd], nil
}

type mapStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[string]string)}
}

func (s *mapStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return value, nil
}

func (s *mapStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func TestRun_RanksJobsAndTakesBestScore(t *testing.T) {
	model := &fakeModel{scores: map[string]int{"jd-a": 42, "jd-b": 91, "jd-c": 70}}
	stage := New(model, nil, nil, nil)

	st := &types.State{
		ResumeText: "resume text",
		Jobs: []types.Job{
			{Company: "A", Description: "jd-a"},
			{Company: "B", Description: "jd-b"},
			{Company: "C", Description: "jd-c"},
		},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, 91, st.MatchScore)
	assert.Equal(t, []string{"B", "C", "A"}, []string{st.Jobs[0].Company, st.Jobs[1].Company, st.Jobs[2].Company})
	assert.Equal(t, 91, st.Jobs[0].Score)
	assert.Empty(t, st.Error)
}

func TestRun_NothingToScore(t *testing.T) {
	model := &fakeModel{}
	stage := New(model, nil, nil, nil)

	st := &types.State{ResumeText: "resume text"}
	require.NoError(t, stage.Run(context.Background(), st))
	assert.Zero(t, st.MatchScore)
	assert.Zero(t, model.calls)

	st = &types.State{Jobs: []types.Job{{Description: "jd"}}}
	require.NoError(t, stage.Run(context.Background(), st))
	assert.Zero(t, st.MatchScore)
	assert.Zero(t, model.calls)
	assert.Empty(t, st.Error)
}

func TestRun_ModelFailureScoresZeroAndRecordsError(t *testing.T) {
	model := &fakeModel{err: errors.New("scorer offline")}
	stage := New(model, nil, nil, nil)

	st := &types.State{
		ResumeText: "resume text",
		Jobs:       []types.Job{{Description: "jd-a"}, {Description: "jd-b"}},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Zero(t, st.MatchScore)
	assert.Contains(t, st.Error, "scoring failed")
	assert.Equal(t, 2, model.calls, "remaining jobs are still scored")
}

func TestRun_CachedScoreSkipsModel(t *testing.T) {
	store := newMapStore()
	gateway := cache.New(store, nil, nil)
	model := &fakeModel{scores: map[string]int{"jd-a": 77}}
	stage := New(model, gateway, nil, nil)

	st := &types.State{ResumeText: "resume text", Jobs: []types.Job{{Description: "jd-a"}}}
	require.NoError(t, stage.Run(context.Background(), st))
	assert.Equal(t, 77, st.MatchScore)
	assert.Equal(t, 1, model.calls)

	again := &types.State{ResumeText: "resume text", Jobs: []types.Job{{Description: "jd-a"}}}
	require.NoError(t, stage.Run(context.Background(), again))
	assert.Equal(t, 77, again.MatchScore)
	assert.Equal(t, 1, model.calls, "second run must be served from cache")
}

func TestRun_ClampsOutOfRangeScores(t *testing.T) {
	model := &fakeModel{scores: map[string]int{"jd-high": 140, "jd-low": -5}}
	stage := New(model, nil, nil, nil)

	st := &types.State{
		ResumeText: "resume text",
		Jobs:       []types.Job{{Description: "jd-high"}, {Description: "jd-low"}},
	}
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, 100, st.MatchScore)
	assert.Equal(t, 0, st.Jobs[1].Score)
}
