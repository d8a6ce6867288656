package model

import "time"

/*

CommentReply is a second level reply under a comment.

Id: primary key
CreatedAt: time when entity is created

Content: reply body in plain text
CommentID:
Comment: the comment replied to, "belongs-to" relation
PostID:
Post: the post owning the parent comment, "belongs-to" relation. Kept
denormalized so replies can be listed per post in a single query.
AuthorID:
Author: the replying user, "belongs-to" relation

*/

type CommentReply struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `gorm:"not null" json:"content"`
	CommentID string    `gorm:"not null;index" json:"comment_id"`
	Comment   *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comment,omitempty"`
	PostID    string    `gorm:"not null;index" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	AuthorID  string    `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
}
