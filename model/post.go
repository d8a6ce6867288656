package model

import "time"

/*

Post is a top level piece of user generated content.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time of the last partial update

Title: post's title in plain text
Content: post's body in plain text
AuthorID:
Author: the user who created the post, "belongs-to" relation

Comments: comments under this post, "has-many" relation
Replies: replies under any comment of this post. Denormalized on post id so
the whole discussion of a post can be fetched without walking comments.
Reactions: like/dislike rows targeting this post, polymorphic relation

Deleting a post removes its comments, replies and reactions in the same
transaction (cascade policy, see content.Store.DeletePost).

*/

type Post struct {
	Id        string          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Title     string          `gorm:"not null" json:"title"`
	Content   string          `gorm:"not null" json:"content"`
	AuthorID  string          `gorm:"not null;index" json:"author_id"`
	Author    *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	Comments  []*Comment      `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
	Replies   []*CommentReply `gorm:"constraint:OnDelete:CASCADE;" json:"replies,omitempty"`
	Reactions []*Reaction     `gorm:"polymorphic:Target;" json:"reactions,omitempty"`
}
