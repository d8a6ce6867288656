// Package content owns the post -> comment -> reply tree. Every operation
// normalizes failures to the apperror taxonomy, no gorm error object ever
// reaches a caller.
package content

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
)

// Store is the content engine over a gorm database. It holds no state beyond
// the connection pool and is safe for concurrent use.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreatePost persists a new post and returns it with the author's display
// name attached. A missing author fails with NotFound.
func (s *Store) CreatePost(authorID string, in model.CreatePostInput) (*model.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid post payload")
	}

	author, err := s.loadUser(authorID)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		Id:       uuid.New().String(),
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: authorID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "creating post")
	}
	post.Author = author
	return &post, nil
}

// UpdatePost applies a partial update. An update carrying no field at all is
// a validation failure, an unknown post id is NotFound.
func (s *Store) UpdatePost(postID string, in model.UpdatePostInput) (*model.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid post update payload")
	}
	if in.Empty() {
		return nil, apperror.New(apperror.Validation, "post update must carry a title or content")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}

	result := s.db.Model(&model.Post{}).Where("id = ?", postID).Updates(updates)
	if result.Error != nil {
		return nil, apperror.Wrap(result.Error, apperror.Internal, "updating post")
	}
	if result.RowsAffected == 0 {
		return nil, apperror.New(apperror.NotFound, "post not found")
	}

	var post model.Post
	if err := s.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "reloading post")
	}
	return &post, nil
}

// DeletePost removes a post together with its comments, replies and
// reactions in one transaction. Deleting an absent post is NotFound, not a
// silent no-op.
func (s *Store) DeletePost(postID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&model.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "collecting comments of post")
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", model.TargetComment, commentIDs).
				Delete(&model.Reaction{}).Error; err != nil {
				return apperror.Wrap(err, apperror.Internal, "deleting comment reactions of post")
			}
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.TargetPost, postID).
			Delete(&model.Reaction{}).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "deleting reactions of post")
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.CommentReply{}).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "deleting replies of post")
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return apperror.Wrap(err, apperror.Internal, "deleting comments of post")
		}

		result := tx.Delete(&model.Post{}, "id = ?", postID)
		if result.Error != nil {
			return apperror.Wrap(result.Error, apperror.Internal, "deleting post")
		}
		if result.RowsAffected == 0 {
			return apperror.New(apperror.NotFound, "post not found")
		}
		return nil
	})
}

// GetAllPosts lists every post with its author attached, oldest first.
func (s *Store) GetAllPosts() ([]*model.Post, error) {
	var posts []*model.Post
	if err := s.db.Preload("Author").Order("created_at").Find(&posts).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing posts")
	}
	return posts, nil
}

// GetPost loads a single post with its whole discussion eagerly attached:
// author, comments (with their authors and reactions), replies and post
// reactions.
func (s *Store) GetPost(postID string) (*model.Post, error) {
	var post model.Post
	err := s.db.
		Preload("Author").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Comments.Reactions").
		Preload("Replies").
		Preload("Reactions").
		Preload("Reactions.User").
		First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, "post not found")
		}
		return nil, apperror.Wrap(err, apperror.Internal, "loading post")
	}
	return &post, nil
}

// GetPostsByAuthor lists the posts a given user created, oldest first.
func (s *Store) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	var posts []*model.Post
	if err := s.db.Where("author_id = ?", authorID).Order("created_at").Find(&posts).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing posts by author")
	}
	return posts, nil
}

func (s *Store) loadUser(userID string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, "user not found")
		}
		return nil, apperror.Wrap(err, apperror.Internal, "loading user")
	}
	user.Hash = ""
	return &user, nil
}

func (s *Store) postExists(postID string) error {
	var post model.Post
	if err := s.db.Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.NotFound, "post not found")
		}
		return apperror.Wrap(err, apperror.Internal, "checking post")
	}
	return nil
}
