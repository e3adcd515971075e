package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkplaceType(t *testing.T) {
	assert.Equal(t, WorkplaceRemote, ParseWorkplaceType("Remote"))
	assert.Equal(t, WorkplaceHybrid, ParseWorkplaceType("Hybrid"))
	assert.Equal(t, WorkplaceInOffice, ParseWorkplaceType("In-Office"))
	assert.Equal(t, WorkplaceRemote, ParseWorkplaceType("moonbase"))
	assert.Equal(t, WorkplaceRemote, ParseWorkplaceType(""))
}

func TestHasInterviewIsDerived(t *testing.T) {
	j := &Job{}
	assert.False(t, j.HasInterview())

	j.Interviews = append(j.Interviews, Interview{ID: "iv-1"})
	assert.True(t, j.HasInterview())
}

func TestLatestInterviewDate(t *testing.T) {
	j := &Job{}
	assert.Nil(t, j.LatestInterviewDate())

	early := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 20, 15, 0, 0, 0, time.UTC)
	j.Interviews = []Interview{{Date: late}, {Date: early}}

	got := j.LatestInterviewDate()
	require.NotNil(t, got)
	assert.True(t, got.Equal(late))
}

func TestNextRound(t *testing.T) {
	j := &Job{}
	assert.Equal(t, 1, j.NextRound())

	j.Interviews = []Interview{{Round: 1}, {Round: 3}}
	assert.Equal(t, 4, j.NextRound())
}

func TestTouch(t *testing.T) {
	j := &Job{}
	j.Touch()
	assert.WithinDuration(t, time.Now().UTC(), j.LastModified, time.Second)
}
