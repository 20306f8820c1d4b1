package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateString_ValidGapReport(t *testing.T) {
	doc := `{
		"hard_skills": ["Kubernetes", "Terraform"],
		"soft_skills": ["Leadership"],
		"required_experience": "3+ years running production clusters",
		"priority_focus": "Kubernetes"
	}`

	assert.NoError(t, ValidateString(GapReport(), doc))
}

func TestValidateString_GapReportMissingField(t *testing.T) {
	doc := `{"hard_skills": [], "soft_skills": []}`

	err := ValidateString(GapReport(), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateString_GapReportWrongType(t *testing.T) {
	doc := `{
		"hard_skills": "not an array",
		"soft_skills": [],
		"required_experience": "",
		"priority_focus": ""
	}`

	err := ValidateString(GapReport(), doc)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateString_ValidCandidateProfile(t *testing.T) {
	doc := `{
		"full_name": "Jane Doe",
		"email": "jane@example.com",
		"skills": ["Python", "AWS"],
		"experience": [
			{"title": "Engineer", "company": "Acme", "duration": "2 years"}
		]
	}`

	assert.NoError(t, ValidateString(CandidateProfile(), doc))
}

func TestValidateString_CandidateProfileEmptyName(t *testing.T) {
	doc := `{"full_name": "", "skills": [], "experience": []}`

	err := ValidateString(CandidateProfile(), doc)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateString_MalformedDocument(t *testing.T) {
	err := ValidateString(GapReport(), "{not json")
	require.Error(t, err)
}
