package parsing

import (
	"context"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
)

// Stage adapts the parser to the pipeline. A parse failure propagates as the
// stage error; the profile stays nil and downstream stages degrade on their
// own terms.
type Stage struct {
	parser *Parser
}

// NewStage wraps a parser for pipeline execution.
func NewStage(parser *Parser) *Stage {
	return &Stage{parser: parser}
}

// Name identifies the stage in logs, metrics, and traces.
func (s *Stage) Name() string { return "parse" }

// Run parses the raw document and writes the profile and sanitized text.
func (s *Stage) Run(ctx context.Context, st *types.State) error {
	profile, text, err := s.parser.Parse(ctx, st.RawDocument)
	if err != nil {
		return err
	}
	st.Profile = profile
	st.ResumeText = text
	return nil
}
