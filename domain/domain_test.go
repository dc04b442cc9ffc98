package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinograph/domain"
)

func TestDateJSON(t *testing.T) {
	d := domain.NewDate(1999, time.March, 25)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1999-03-25"`, string(data))

	var parsed domain.Date
	require.NoError(t, json.Unmarshal([]byte(`"1895-12-28"`), &parsed))
	assert.Equal(t, domain.EarliestRelease, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"25.03.1999"`), &parsed))
}

func TestDateOrdering(t *testing.T) {
	earlier := domain.NewDate(1895, time.December, 27)
	assert.True(t, earlier.Before(domain.EarliestRelease))
	assert.False(t, domain.EarliestRelease.Before(domain.EarliestRelease))
	assert.True(t, domain.NewDate(1896, time.January, 1).After(domain.EarliestRelease))
}

func TestIDSetJSONSorted(t *testing.T) {
	s := domain.NewIDSet(3, 1, 2)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(data))

	var parsed domain.IDSet
	require.NoError(t, json.Unmarshal([]byte(`[5,5,7]`), &parsed))
	assert.Equal(t, 2, parsed.Len())
	assert.True(t, parsed.Has(5))
}

func TestIDSetIntersect(t *testing.T) {
	a := domain.NewIDSet(1, 2, 3)
	b := domain.NewIDSet(2, 3, 4)

	assert.Equal(t, []int{2, 3}, a.Intersect(b).IDs())
	assert.Equal(t, a.Intersect(b), b.Intersect(a))
}

func TestMovieCloneIsDeep(t *testing.T) {
	m := domain.Movie{ID: 1, Title: "orig", LikedBy: domain.NewIDSet(1)}
	clone := m.Clone()
	clone.LikedBy.Add(2)

	assert.Equal(t, 1, m.LikedBy.Len())
	assert.Equal(t, 2, clone.LikedBy.Len())
}
