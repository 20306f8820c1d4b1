package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]string
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

type countingRecorder struct {
	hits   map[string]int
	misses map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{hits: map[string]int{}, misses: map[string]int{}}
}

func (r *countingRecorder) CacheHit(prefix string)  { r.hits[prefix]++ }
func (r *countingRecorder) CacheMiss(prefix string) { r.misses[prefix]++ }

func TestGenerateKey_Deterministic(t *testing.T) {
	a := GenerateKey("ats_v1", "resume text", "job description")
	b := GenerateKey("ats_v1", "resume text", "job description")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "ats_v1:"))
	assert.Len(t, strings.TrimPrefix(a, "ats_v1:"), 64)
}

func TestGenerateKey_DifferentPartsDiffer(t *testing.T) {
	a := GenerateKey("jobs_v3", "Backend Engineer", "Berlin")
	b := GenerateKey("jobs_v3", "Backend Engineer", "Munich")

	assert.NotEqual(t, a, b)
}

func TestGenerateKey_TruncationBoundary(t *testing.T) {
	base := strings.Repeat("a", maxPartLen)

	// Differences beyond the bounded prefix collide by contract.
	assert.Equal(t,
		GenerateKey("ats_v1", base+"SUFFIX-ONE"),
		GenerateKey("ats_v1", base+"suffix-two"),
	)

	// Differences within the prefix do not.
	within := strings.Repeat("a", maxPartLen-1) + "b"
	assert.NotEqual(t,
		GenerateKey("ats_v1", base),
		GenerateKey("ats_v1", within),
	)
}

func TestGateway_GetSetRoundTrip(t *testing.T) {
	store := newMemStore()
	rec := newCountingRecorder()
	g := New(store, rec, nil)
	ctx := context.Background()

	key := GenerateKey("ats_v1", "resume", "jd")

	var score int
	require.False(t, g.Get(ctx, key, &score))

	g.Set(ctx, key, 87, 24*time.Hour)
	require.True(t, g.Get(ctx, key, &score))
	assert.Equal(t, 87, score)

	assert.Equal(t, 1, rec.misses["ats_v1"])
	assert.Equal(t, 1, rec.hits["ats_v1"])
}

func TestGateway_StoreFailuresSwallowed(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	g := New(store, nil, nil)
	ctx := context.Background()

	var out string
	assert.False(t, g.Get(ctx, "jobs_v3:abc", &out))
	assert.NotPanics(t, func() {
		g.Set(ctx, "jobs_v3:abc", "value", time.Minute)
	})
}

func TestGateway_UndecodableEntryIsMiss(t *testing.T) {
	store := newMemStore()
	store.values["learning_v2:xyz"] = "{not json"
	rec := newCountingRecorder()
	g := New(store, rec, nil)

	var out []string
	assert.False(t, g.Get(context.Background(), "learning_v2:xyz", &out))
	assert.Equal(t, 1, rec.misses["learning_v2"])
}
