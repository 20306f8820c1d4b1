package parsing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileJSON = `{
	"full_name": "Jane Doe",
	"email": "jane@example.com",
	"skills": ["Python", "AWS"],
	"experience": [
		{"title": "Backend Engineer", "company": "Acme", "duration": "3 years"}
	]
}`

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (c *fakeCompleter) Run(_ context.Context, _, _ string, _ bool) (string, error) {
	c.calls++
	return c.response, c.err
}

func TestParse_Success(t *testing.T) {
	completer := &fakeCompleter{response: validProfileJSON}
	p := New(completer, nil, 5*1024*1024, nil)

	profile, text, err := p.Parse(context.Background(), []byte("Jane Doe, Backend Engineer. Python, AWS."))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.Equal(t, []string{"Python", "AWS"}, profile.Skills)
	assert.Contains(t, text, "Jane Doe")
	assert.Equal(t, 1, completer.calls)
}

func TestParse_OversizedDocumentRejectedBeforeAnyCall(t *testing.T) {
	completer := &fakeCompleter{response: validProfileJSON}
	p := New(completer, nil, 16, nil)

	_, _, err := p.Parse(context.Background(), bytes.Repeat([]byte("x"), 17))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, completer.calls, "size guard must reject before any network call")
}

func TestParse_EmptyDocument(t *testing.T) {
	p := New(&fakeCompleter{}, nil, 1024, nil)

	_, _, err := p.Parse(context.Background(), nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParse_EmptyAfterSanitization(t *testing.T) {
	completer := &fakeCompleter{response: validProfileJSON}
	p := New(completer, nil, 1024, nil)

	_, _, err := p.Parse(context.Background(), []byte("\x00\x01\x02   \n"))
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 0, completer.calls)
}

func TestParse_SchemaViolation(t *testing.T) {
	completer := &fakeCompleter{response: `{"full_name": "", "skills": []}`}
	p := New(completer, nil, 1024, nil)

	_, _, err := p.Parse(context.Background(), []byte("some resume text"))
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestParse_BackendFailureSingleAttempt(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("backend down")}
	p := New(completer, nil, 1024, nil)

	_, _, err := p.Parse(context.Background(), []byte("some resume text"))
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, completer.calls, "extraction is attempted exactly once")
}

func TestParse_MarkdownFencedResponseAccepted(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n" + validProfileJSON + "\n```"}
	p := New(completer, nil, 1024, nil)

	profile, _, err := p.Parse(context.Background(), []byte("resume text"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.FullName)
}

func TestDocumentExtractor_PlainText(t *testing.T) {
	text, err := DocumentExtractor{}.Extract([]byte("plain resume text"))
	require.NoError(t, err)
	assert.Equal(t, "plain resume text", text)
}

func TestDocumentExtractor_InvalidBytes(t *testing.T) {
	_, err := DocumentExtractor{}.Extract([]byte{0xff, 0xfe, 0xfd})
	assert.Error(t, err)
}

func TestDocumentExtractor_TruncatedPDF(t *testing.T) {
	_, err := DocumentExtractor{}.Extract([]byte("%PDF-1.7 not actually a pdf"))
	assert.Error(t, err)
}
