package model

import "time"

// Vote is the direction of a reaction.
type Vote string

const (
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
)

// Opposite returns the mutually exclusive counterpart of a vote.
func (v Vote) Opposite() Vote {
	if v == VoteLike {
		return VoteDislike
	}
	return VoteLike
}

// Target type values written by gorm's polymorphic association. They are the
// table names of the owning models.
const (
	TargetPost    = "posts"
	TargetComment = "comments"
)

/*

Reaction is a single like or dislike from a user on a post or a comment.

Id: primary key
CreatedAt: time when the reaction was recorded

Vote: "like" or "dislike"
UserID:
User: the reacting user, "belongs-to" relation
TargetType: "posts" or "comments", written by the polymorphic association
TargetID: id of the post or comment reacted on

The composite unique index on (user_id, target_type, target_id) is the
enforcement point for the one-reaction-per-user-per-target invariant: two
concurrent writes for the same pair cannot both commit, no read-then-write
check involved. Together with the opposite-vote swap in reaction.Ledger this
also yields like/dislike mutual exclusivity in both directions.

*/

type Reaction struct {
	Id         string    `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Vote       Vote      `gorm:"not null" json:"vote"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_reaction_user_target" json:"user_id"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	TargetType string    `gorm:"not null;uniqueIndex:idx_reaction_user_target" json:"target_type"`
	TargetID   string    `gorm:"not null;uniqueIndex:idx_reaction_user_target" json:"target_id"`
}
