package model

import "time"

/*

Comment is a piece of content attached to a post.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time of the last content edit

Content: comment body in plain text
PostID:
Post: the post commented on, "belongs-to" relation
AuthorID:
Author: the commenting user, "belongs-to" relation

Replies: second level replies under this comment, "has-many" relation
Reactions: like/dislike rows targeting this comment, polymorphic relation.
Unlike the historic schema, comment reactions carry the reacting user so the
one-reaction-per-user invariant holds for comments exactly as for posts.

*/

type Comment struct {
	Id        string          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Content   string          `gorm:"not null" json:"content"`
	PostID    string          `gorm:"not null;index" json:"post_id"`
	Post      *Post           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	AuthorID  string          `gorm:"not null" json:"author_id"`
	Author    *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	Replies   []*CommentReply `gorm:"constraint:OnDelete:CASCADE;" json:"replies,omitempty"`
	Reactions []*Reaction     `gorm:"polymorphic:Target;" json:"reactions,omitempty"`
}
