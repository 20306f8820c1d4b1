package gaps

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReportJSON = `{
	"hard_skills": ["Kubernetes", "Terraform"],
	"soft_skills": ["Stakeholder communication"],
	"required_experience": "3+ years operating production clusters",
	"priority_focus": "Kubernetes"
}`

type fakeCompleter struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (c *fakeCompleter) Run(_ context.Context, prompt, _ string, _ bool) (string, error) {
	c.calls++
	c.lastPrompt = prompt
	return c.response, c.err
}

func analysisState(score int) *types.State {
	return &types.State{
		MatchScore: score,
		ResumeText: "Go engineer, five years",
		Jobs:       []types.Job{{Description: "Needs Kubernetes and Terraform"}},
	}
}

func TestRun_PerfectMatchSkipsBackend(t *testing.T) {
	completer := &fakeCompleter{response: validReportJSON}
	stage := New(completer, nil)

	st := analysisState(92)
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, types.StatusPerfectMatch, st.GapStatus)
	assert.Nil(t, st.Gaps)
	assert.Zero(t, completer.calls, "no backend call at or above the threshold")
	assert.Empty(t, st.Error)
}

func TestRun_ThresholdBoundary(t *testing.T) {
	completer := &fakeCompleter{response: validReportJSON}
	stage := New(completer, nil)

	st := analysisState(90)
	require.NoError(t, stage.Run(context.Background(), st))
	assert.Equal(t, types.StatusPerfectMatch, st.GapStatus)
	assert.Zero(t, completer.calls)

	st = analysisState(89)
	require.NoError(t, stage.Run(context.Background(), st))
	assert.Equal(t, types.StatusGapsIdentified, st.GapStatus)
	assert.Equal(t, 1, completer.calls)
}

func TestRun_IdentifiesGaps(t *testing.T) {
	completer := &fakeCompleter{response: validReportJSON}
	stage := New(completer, nil)

	st := analysisState(60)
	require.NoError(t, stage.Run(context.Background(), st))

	require.NotNil(t, st.Gaps)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, st.Gaps.HardSkills)
	assert.Equal(t, "Kubernetes", st.Gaps.PriorityFocus)
	assert.Equal(t, types.StatusGapsIdentified, st.GapStatus)
	assert.Empty(t, st.Error)
}

func TestRun_MissingInputsSkipQuietly(t *testing.T) {
	completer := &fakeCompleter{response: validReportJSON}
	stage := New(completer, nil)

	st := &types.State{MatchScore: 40}
	require.NoError(t, stage.Run(context.Background(), st))

	require.NotNil(t, st.Gaps)
	assert.Empty(t, st.Gaps.MissingSkills())
	assert.Equal(t, types.StatusUnavailable, st.GapStatus)
	assert.Zero(t, completer.calls)
	assert.Empty(t, st.Error, "missing inputs are not a failure")
}

func TestRun_BackendFailureIsRecoverable(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("backend down")}
	stage := New(completer, nil)

	st := analysisState(50)
	require.NoError(t, stage.Run(context.Background(), st))

	require.NotNil(t, st.Gaps)
	assert.Empty(t, st.Gaps.MissingSkills())
	assert.Equal(t, types.StatusUnavailable, st.GapStatus)
	assert.Contains(t, st.Error, "gap analysis failed")
}

func TestRun_SchemaViolationIsRecoverable(t *testing.T) {
	completer := &fakeCompleter{response: `{"hard_skills": "not a list"}`}
	stage := New(completer, nil)

	st := analysisState(50)
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Equal(t, types.StatusUnavailable, st.GapStatus)
	assert.Contains(t, st.Error, "gap analysis failed")
}

func TestRun_PromptInputsBounded(t *testing.T) {
	completer := &fakeCompleter{response: validReportJSON}
	stage := New(completer, nil)

	st := analysisState(50)
	st.ResumeText = strings.Repeat("r", 10000)
	st.Jobs[0].Description = strings.Repeat("d", 10000)
	require.NoError(t, stage.Run(context.Background(), st))

	assert.Less(t, len(completer.lastPrompt), 7000, "both inputs must be truncated")
}
