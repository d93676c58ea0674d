// Package models defines the server-side persistence entities for polls
// and their dependent records.
package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteType is the kind of answer a participant gave for an option.
type VoteType string

const (
	VoteYes      VoteType = "yes"
	VoteNo       VoteType = "no"
	VoteIfNeedBe VoteType = "ifNeedBe"
)

// Poll is the root entity. Options, Participants and Votes belong to
// exactly one Poll and never outlive it.
//
// Deleted and DeletedAt move together: a tombstoned poll has
// Deleted=true and a non-nil DeletedAt, an active poll has neither.
type Poll struct {
	ID        string
	OwnerID   string
	Title     string
	Demo      bool
	CreatedAt time.Time
	TouchedAt *time.Time
	Deleted   bool
	DeletedAt *time.Time
}

// NewPoll returns an active poll with a fresh id.
func NewPoll(ownerID, title string, demo bool, now time.Time) *Poll {
	return &Poll{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Demo:      demo,
		CreatedAt: now,
	}
}

// LastActivity is the timestamp relevance decisions are made on:
// the last touch if the poll was ever touched, creation time otherwise.
func (p *Poll) LastActivity() time.Time {
	if p.TouchedAt != nil {
		return *p.TouchedAt
	}
	return p.CreatedAt
}

// Option is a candidate date/time the poll is choosing among.
type Option struct {
	ID      string
	PollID  string
	StartAt time.Time
}

func NewOption(pollID string, startAt time.Time) *Option {
	return &Option{ID: uuid.NewString(), PollID: pollID, StartAt: startAt}
}

// Participant is a named respondent of a poll.
type Participant struct {
	ID     string
	PollID string
	Name   string
}

func NewParticipant(pollID, name string) *Participant {
	return &Participant{ID: uuid.NewString(), PollID: pollID, Name: name}
}

// Vote links a participant's answer to an option. PollID is denormalized
// so the whole dependent set of a poll can be removed in one statement.
type Vote struct {
	ID            string
	PollID        string
	OptionID      string
	ParticipantID string
	Type          VoteType
}

func NewVote(pollID, optionID, participantID string, voteType VoteType) *Vote {
	return &Vote{
		ID:            uuid.NewString(),
		PollID:        pollID,
		OptionID:      optionID,
		ParticipantID: participantID,
		Type:          voteType,
	}
}
