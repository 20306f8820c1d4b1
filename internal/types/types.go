// Package types defines the workflow state record and the domain types that
// flow through the career analysis pipeline.
package types

// Job source tags indicate which sourcing tier produced a job record.
const (
	SourceCache    = "cache"
	SourceVector   = "vector"
	SourceExternal = "external"
)

// Recommendation status markers set by the gap analysis stage.
const (
	StatusPerfectMatch   = "Perfect Match"
	StatusGapsIdentified = "Gaps Identified"
	StatusUnavailable    = "Gap Analysis Unavailable"
)

// State is the single mutable record threaded through every pipeline stage.
// Stages run sequentially; each stage writes only the fields it owns.
type State struct {
	// Inputs, immutable after creation.
	RawDocument []byte `json:"-"`
	JobTitle    string `json:"job_title"`
	Location    string `json:"location"`

	// Written by the parser.
	Profile    *CandidateProfile `json:"candidate_profile,omitempty"`
	ResumeText string            `json:"-"`

	// Written by sourcing.
	Jobs []Job `json:"jobs"`

	// Written by scoring.
	MatchScore int `json:"score"`

	// Written by gap analysis.
	Gaps      *GapReport `json:"missing_skills,omitempty"`
	GapStatus string     `json:"recommendation_status,omitempty"`

	// Written by pathfinding.
	LearningPath []LearningResource `json:"learning_path"`

	// First stage failure wins; downstream stages still run.
	Error string `json:"error,omitempty"`
}

// SetError records a stage failure. The first error is kept; later failures
// are assumed to be downstream effects of the first.
func (s *State) SetError(msg string) {
	if s.Error == "" {
		s.Error = msg
	}
}

// CandidateProfile is the structured extraction of a résumé. Produced once by
// the parser and read-only afterwards.
type CandidateProfile struct {
	FullName   string            `json:"full_name"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
}

// ExperienceEntry is one role from a candidate's work history.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Job is a single job listing produced by the sourcing stage. Score is filled
// in later by the scoring stage; everything else is immutable once sourced.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Source      string `json:"source"`
	Score       int    `json:"score"`
}

// GapReport enumerates what the candidate is missing for the target role.
// The schema is enforced at the gap analysis boundary.
type GapReport struct {
	HardSkills         []string `json:"hard_skills"`
	SoftSkills         []string `json:"soft_skills"`
	RequiredExperience string   `json:"required_experience"`
	PriorityFocus      string   `json:"priority_focus"`
}

// MissingSkills flattens hard and soft skills into one list, hard first.
// Safe to call on a nil report.
func (g *GapReport) MissingSkills() []string {
	if g == nil {
		return nil
	}
	skills := make([]string, 0, len(g.HardSkills)+len(g.SoftSkills))
	skills = append(skills, g.HardSkills...)
	skills = append(skills, g.SoftSkills...)
	return skills
}

// LearningResource is one step of a learning path, built per missing skill.
// ResourceURL is empty when the video search found nothing.
type LearningResource struct {
	Skill         string   `json:"skill"`
	ResourceURL   string   `json:"resource_url,omitempty"`
	Title         string   `json:"title"`
	Milestones    []string `json:"milestones"`
	EstimatedTime string   `json:"estimated_time"`
}
