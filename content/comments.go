package content

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
)

// CommentPage is the wire shape of a comment listing.
type CommentPage struct {
	TotalComments int              `json:"totalComments"`
	Comments      []*model.Comment `json:"comments"`
}

// CreateComment attaches a new comment to a post. Missing post or author is
// NotFound.
func (s *Store) CreateComment(postID, authorID string, in model.CommentInput) (*model.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid comment payload")
	}
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	author, err := s.loadUser(authorID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		Id:       uuid.New().String(),
		Content:  in.Content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "creating comment")
	}
	comment.Author = author
	return &comment, nil
}

// UpdateComment replaces the content of a comment.
func (s *Store) UpdateComment(commentID string, in model.CommentInput) (*model.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid comment payload")
	}

	result := s.db.Model(&model.Comment{}).Where("id = ?", commentID).Update("content", in.Content)
	if result.Error != nil {
		return nil, apperror.Wrap(result.Error, apperror.Internal, "updating comment")
	}
	if result.RowsAffected == 0 {
		return nil, apperror.New(apperror.NotFound, "comment not found")
	}

	var comment model.Comment
	if err := s.db.Preload("Author").First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "reloading comment")
	}
	return &comment, nil
}

// DeleteComment removes a comment together with its replies and reactions in
// one transaction. Absent comment is NotFound.
func (s *Store) DeleteComment(commentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.TargetComment, commentID).
			Delete(&model.Reaction{}).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "deleting reactions of comment")
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.CommentReply{}).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "deleting replies of comment")
		}

		result := tx.Delete(&model.Comment{}, "id = ?", commentID)
		if result.Error != nil {
			return apperror.Wrap(result.Error, apperror.Internal, "deleting comment")
		}
		if result.RowsAffected == 0 {
			return apperror.New(apperror.NotFound, "comment not found")
		}
		return nil
	})
}

// ListComments returns every comment of a post with authors and reaction
// rows attached, oldest first.
func (s *Store) ListComments(postID string) (*CommentPage, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}

	var comments []*model.Comment
	err := s.db.
		Preload("Author").
		Preload("Reactions").
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing comments")
	}
	return &CommentPage{TotalComments: len(comments), Comments: comments}, nil
}

func (s *Store) loadComment(commentID string) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, "comment not found")
		}
		return nil, apperror.Wrap(err, apperror.Internal, "loading comment")
	}
	return &comment, nil
}
