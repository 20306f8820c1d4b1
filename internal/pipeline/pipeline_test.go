package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStage struct {
	name  string
	run   func(st *types.State) error
	calls int
}

func (s *fakeStage) Name() string { return s.name }

func (s *fakeStage) Run(_ context.Context, st *types.State) error {
	s.calls++
	if s.run != nil {
		return s.run(st)
	}
	return nil
}

func newStages(score int) (parse, source, scoreStage, gap, path *fakeStage) {
	parse = &fakeStage{name: "parse"}
	source = &fakeStage{name: "source"}
	scoreStage = &fakeStage{name: "score", run: func(st *types.State) error {
		st.MatchScore = score
		return nil
	}}
	gap = &fakeStage{name: "gap"}
	path = &fakeStage{name: "path"}
	return
}

func TestAnalyze_LowScoreRoutesThroughGapAnalysis(t *testing.T) {
	parse, source, score, gap, path := newStages(84)
	engine := NewEngine(NewGraph(parse, source, score, gap, path), nil, nil)

	st := &types.State{}
	require.NoError(t, engine.Analyze(context.Background(), st))

	assert.Equal(t, 1, parse.calls)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, score.calls)
	assert.Equal(t, 1, gap.calls)
	assert.Equal(t, 1, path.calls)
}

func TestAnalyze_HighScoreSkipsGapAnalysis(t *testing.T) {
	parse, source, score, gap, path := newStages(85)
	engine := NewEngine(NewGraph(parse, source, score, gap, path), nil, nil)

	st := &types.State{}
	require.NoError(t, engine.Analyze(context.Background(), st))

	assert.Zero(t, gap.calls, "score at the threshold must skip gap analysis")
	assert.Equal(t, 1, path.calls)
}

func TestAnalyze_StageFailureDoesNotHaltTheWalk(t *testing.T) {
	parse, source, score, gap, path := newStages(50)
	source.run = func(st *types.State) error { return errors.New("sourcing exploded") }
	engine := NewEngine(NewGraph(parse, source, score, gap, path), nil, nil)

	st := &types.State{}
	require.NoError(t, engine.Analyze(context.Background(), st))

	assert.Contains(t, st.Error, "sourcing exploded")
	assert.Equal(t, 1, score.calls, "downstream stages still run")
	assert.Equal(t, 1, gap.calls)
	assert.Equal(t, 1, path.calls)
}

func TestAnalyze_FirstErrorWins(t *testing.T) {
	parse, source, score, gap, path := newStages(50)
	parse.run = func(st *types.State) error { return errors.New("first failure") }
	gap.run = func(st *types.State) error { return errors.New("second failure") }
	engine := NewEngine(NewGraph(parse, source, score, gap, path), nil, nil)

	st := &types.State{}
	require.NoError(t, engine.Analyze(context.Background(), st))
	assert.Equal(t, "first failure", st.Error)
}

func TestAnalyze_PanicBecomesError(t *testing.T) {
	parse, source, score, gap, path := newStages(50)
	score.run = func(st *types.State) error { panic("nil map write") }
	engine := NewEngine(NewGraph(parse, source, score, gap, path), nil, nil)

	err := engine.Analyze(context.Background(), &types.State{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflow execution failed")
}
