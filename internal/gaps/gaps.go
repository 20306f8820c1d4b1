// Package gaps asks a completion backend what the candidate is missing for
// the target role. High scores short-circuit without a backend call; any
// failure degrades to an empty report and a recoverable status.
package gaps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IamHari01/NEXUS-TALENT/internal/llm"
	"github.com/IamHari01/NEXUS-TALENT/internal/schemas"
	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"go.uber.org/zap"
)

const (
	// perfectMatchScore is the cost-control early exit: at or above it the
	// candidate is already a fit and no backend call is made.
	perfectMatchScore = 90

	// inputLimit bounds each of résumé text and job description in the prompt.
	inputLimit = 3000
)

const analysisInstruction = "You are a career advisor. Compare the resume against the job description " +
	"and enumerate what the candidate is missing. Output only valid JSON matching this schema, " +
	"with no markdown and no explanation:\n%s"

// Stage performs the gap analysis.
type Stage struct {
	completer llm.Completer
	logger    *zap.Logger
}

// New creates the gap analysis stage.
func New(completer llm.Completer, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{completer: completer, logger: logger}
}

// Name identifies the stage in logs, metrics, and traces.
func (s *Stage) Name() string { return "gap" }

// Run writes the gap report and recommendation status to the state. Scores at
// or above the perfect-match threshold skip the backend entirely. Missing
// inputs or any backend/schema failure produce an empty report and a
// recoverable status; the stage never fails the workflow.
func (s *Stage) Run(ctx context.Context, st *types.State) error {
	if st.MatchScore >= perfectMatchScore {
		st.GapStatus = types.StatusPerfectMatch
		s.logger.Info("gap analysis skipped", zap.Int("score", st.MatchScore))
		return nil
	}

	jd := bestJobDescription(st)
	if st.ResumeText == "" || jd == "" {
		st.Gaps = &types.GapReport{}
		st.GapStatus = types.StatusUnavailable
		s.logger.Info("gap analysis has no inputs to compare")
		return nil
	}

	report, err := s.analyze(ctx, st.ResumeText, jd)
	if err != nil {
		s.logger.Warn("gap analysis failed", zap.Error(err))
		st.Gaps = &types.GapReport{}
		st.GapStatus = types.StatusUnavailable
		st.SetError("gap analysis failed: " + err.Error())
		return nil
	}

	st.Gaps = report
	st.GapStatus = types.StatusGapsIdentified
	s.logger.Info("gaps identified",
		zap.Int("hard_skills", len(report.HardSkills)),
		zap.Int("soft_skills", len(report.SoftSkills)))
	return nil
}

func (s *Stage) analyze(ctx context.Context, resume, jd string) (*types.GapReport, error) {
	prompt := fmt.Sprintf("RESUME:\n%s\n\nJOB DESCRIPTION:\n%s",
		truncate(resume, inputLimit), truncate(jd, inputLimit))
	instruction := fmt.Sprintf(analysisInstruction, schemas.GapReport())

	response, err := s.completer.Run(ctx, prompt, instruction, true)
	if err != nil {
		return nil, err
	}

	response = llm.CleanJSONBlock(response)
	if err := schemas.ValidateString(schemas.GapReport(), response); err != nil {
		return nil, fmt.Errorf("response does not conform to gap report schema: %w", err)
	}

	var report types.GapReport
	if err := json.Unmarshal([]byte(response), &report); err != nil {
		return nil, fmt.Errorf("response is not decodable JSON: %w", err)
	}
	return &report, nil
}

// bestJobDescription returns the description of the top-ranked job. Scoring
// sorts the list best first before this stage runs.
func bestJobDescription(st *types.State) string {
	if len(st.Jobs) == 0 {
		return ""
	}
	return st.Jobs[0].Description
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
