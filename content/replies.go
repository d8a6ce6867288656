package content

import (
	"github.com/google/uuid"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
)

// ReplyPage is the wire shape of a reply listing.
type ReplyPage struct {
	TotalReplies int                   `json:"totalReplies"`
	Replies      []*model.CommentReply `json:"replies"`
}

// CreateReply attaches a reply to a comment. Both the comment and the post
// must exist, and the comment must actually belong to the given post.
func (s *Store) CreateReply(commentID, postID, authorID string, in model.ReplyInput) (*model.CommentReply, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid reply payload")
	}
	comment, err := s.loadComment(commentID)
	if err != nil {
		return nil, err
	}
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, apperror.New(apperror.Validation, "comment does not belong to the given post")
	}
	author, err := s.loadUser(authorID)
	if err != nil {
		return nil, err
	}

	reply := model.CommentReply{
		Id:        uuid.New().String(),
		Content:   in.Content,
		CommentID: commentID,
		PostID:    postID,
		AuthorID:  authorID,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "creating reply")
	}
	reply.Author = author
	return &reply, nil
}

// DeleteReply removes a single reply. Absent reply is NotFound.
func (s *Store) DeleteReply(replyID string) error {
	result := s.db.Delete(&model.CommentReply{}, "id = ?", replyID)
	if result.Error != nil {
		return apperror.Wrap(result.Error, apperror.Internal, "deleting reply")
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.NotFound, "reply not found")
	}
	return nil
}

// ListRepliesByPost returns every reply under a post, across all of its
// comments, with the reply authors attached.
func (s *Store) ListRepliesByPost(postID string) (*ReplyPage, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}

	var replies []*model.CommentReply
	err := s.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&replies).Error
	if err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing replies by post")
	}
	return &ReplyPage{TotalReplies: len(replies), Replies: replies}, nil
}

// ListRepliesByUser returns every reply a user has written.
func (s *Store) ListRepliesByUser(userID string) (*ReplyPage, error) {
	var replies []*model.CommentReply
	err := s.db.
		Where("author_id = ?", userID).
		Order("created_at").
		Find(&replies).Error
	if err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing replies by user")
	}
	return &ReplyPage{TotalReplies: len(replies), Replies: replies}, nil
}
