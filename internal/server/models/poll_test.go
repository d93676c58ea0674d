package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoll_StartsActive(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	p := NewPoll("u1", "team lunch", true, now)

	require.NotEmpty(t, p.ID)
	assert.True(t, p.Demo)
	assert.False(t, p.Deleted)
	assert.Nil(t, p.DeletedAt)
	assert.Nil(t, p.TouchedAt)
	assert.Equal(t, now, p.CreatedAt)
}

func TestLastActivity(t *testing.T) {
	created := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	touched := created.Add(10 * 24 * time.Hour)

	p := &Poll{CreatedAt: created}
	assert.Equal(t, created, p.LastActivity(), "falls back to creation time when never touched")

	p.TouchedAt = &touched
	assert.Equal(t, touched, p.LastActivity())
}

func TestNewVote_CarriesPollID(t *testing.T) {
	v := NewVote("p1", "o1", "pt1", VoteYes)
	require.NotEmpty(t, v.ID)
	assert.Equal(t, "p1", v.PollID)
	assert.Equal(t, VoteYes, v.Type)
}
