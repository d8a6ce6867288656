// Package reaction owns like/dislike records for posts and comments. One
// ledger covers both target kinds with one set of invariants: at most one
// reaction per user per target, and like/dislike mutually exclusive in both
// directions.
package reaction

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
)

// Page is the wire shape of a reaction listing.
type Page struct {
	Count     int               `json:"count"`
	Reactions []*model.Reaction `json:"reactions"`
}

// Ledger reads and writes reaction rows. Uniqueness is enforced by the
// composite unique index on reactions, not by any in-process state, so the
// ledger is safe under concurrent requests.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) LikePost(userID, postID string) (*model.Reaction, error) {
	return l.react(userID, model.TargetPost, postID, model.VoteLike)
}

func (l *Ledger) DislikePost(userID, postID string) (*model.Reaction, error) {
	return l.react(userID, model.TargetPost, postID, model.VoteDislike)
}

func (l *Ledger) LikeComment(userID, commentID string) (*model.Reaction, error) {
	return l.react(userID, model.TargetComment, commentID, model.VoteLike)
}

func (l *Ledger) DislikeComment(userID, commentID string) (*model.Reaction, error) {
	return l.react(userID, model.TargetComment, commentID, model.VoteDislike)
}

func (l *Ledger) ListPostLikes(postID string) (*Page, error) {
	return l.list(model.TargetPost, postID, model.VoteLike)
}

func (l *Ledger) ListPostDislikes(postID string) (*Page, error) {
	return l.list(model.TargetPost, postID, model.VoteDislike)
}

func (l *Ledger) ListCommentLikes(commentID string) (*Page, error) {
	return l.list(model.TargetComment, commentID, model.VoteLike)
}

func (l *Ledger) ListCommentDislikes(commentID string) (*Page, error) {
	return l.list(model.TargetComment, commentID, model.VoteDislike)
}

// RemoveCommentReaction deletes a specific reaction row on a comment by its
// id, the unlike/undislike operation. The vote must match the row, removing
// a like through the dislike endpoint is NotFound.
func (l *Ledger) RemoveCommentReaction(reactionID string, vote model.Vote) error {
	result := l.db.Where("id = ? AND target_type = ? AND vote = ?", reactionID, model.TargetComment, vote).
		Delete(&model.Reaction{})
	if result.Error != nil {
		return apperror.Wrap(result.Error, apperror.Internal, "deleting reaction")
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.NotFound, fmt.Sprintf("comment %s not found", vote))
	}
	return nil
}

// react records a vote. Inside one transaction it first drops an existing
// opposite vote by the same user on the same target, then inserts the new
// row. A concurrent or repeated same-vote write trips the unique index and
// surfaces as AlreadyReacted. A crash between the two steps rolls back both.
func (l *Ledger) react(userID, targetType, targetID string, vote model.Vote) (*model.Reaction, error) {
	if err := l.targetExists(targetType, targetID); err != nil {
		return nil, err
	}

	reaction := model.Reaction{
		Id:         uuid.New().String(),
		Vote:       vote,
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	err := l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(
			"user_id = ? AND target_type = ? AND target_id = ? AND vote = ?",
			userID, targetType, targetID, vote.Opposite(),
		).Delete(&model.Reaction{}).Error
		if err != nil {
			return apperror.Wrap(err, apperror.Internal, "removing opposite reaction")
		}

		if err := tx.Create(&reaction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.New(apperror.AlreadyReacted, fmt.Sprintf("cannot %s twice", vote))
			}
			return apperror.Wrap(err, apperror.Internal, "creating reaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := l.db.Preload("User").First(&reaction, "id = ?", reaction.Id).Error; err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "reloading reaction")
	}
	return &reaction, nil
}

func (l *Ledger) list(targetType, targetID string, vote model.Vote) (*Page, error) {
	if err := l.targetExists(targetType, targetID); err != nil {
		return nil, err
	}

	var reactions []*model.Reaction
	err := l.db.
		Preload("User").
		Where("target_type = ? AND target_id = ? AND vote = ?", targetType, targetID, vote).
		Order("created_at").
		Find(&reactions).Error
	if err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "listing reactions")
	}
	return &Page{Count: len(reactions), Reactions: reactions}, nil
}

func (l *Ledger) targetExists(targetType, targetID string) error {
	var (
		err  error
		name string
	)
	switch targetType {
	case model.TargetPost:
		name = "post"
		err = l.db.Select("id").First(&model.Post{}, "id = ?", targetID).Error
	case model.TargetComment:
		name = "comment"
		err = l.db.Select("id").First(&model.Comment{}, "id = ?", targetID).Error
	default:
		return apperror.New(apperror.Validation, "unknown reaction target kind")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.NotFound, name+" not found")
		}
		return apperror.Wrap(err, apperror.Internal, "checking reaction target")
	}
	return nil
}
