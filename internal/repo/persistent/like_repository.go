package persistent

import (
	"context"

	"photo-share/internal/entity"
	"photo-share/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeOutcome reports what a Like call changed.
type LikeOutcome struct {
	// Created is set when the (user, post) row was inserted.
	Created bool
	// Activated is set when the like was absent or inactive before the call.
	Activated bool
}

type LikeRepository interface {
	// Like marks the (user, post) pair as liked.
	Like(ctx context.Context, userID, postID string) (LikeOutcome, error)
	// Dislike clears an existing like. It returns ErrNotFound when the user
	// never liked the post.
	Dislike(ctx context.Context, userID, postID string) error
	Get(ctx context.Context, userID, postID string) (*entity.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like relies on the unique (user_id, post_id) index: the insert is skipped
// when the row exists, so concurrent likes never produce duplicates.
func (r *likeRepository) Like(ctx context.Context, userID, postID string) (LikeOutcome, error) {
	var outcome LikeOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likeModel := &model.LikeModel{
			UserID: userID,
			PostID: postID,
			Liked:  true,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(likeModel)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 1 {
			outcome = LikeOutcome{Created: true, Activated: true}
			return nil
		}

		result = tx.Model(&model.LikeModel{}).
			Where("user_id = ? AND post_id = ? AND liked = ?", userID, postID, false).
			Update("liked", true)
		if result.Error != nil {
			return result.Error
		}
		outcome.Activated = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return LikeOutcome{}, err
	}
	return outcome, nil
}

func (r *likeRepository) Dislike(ctx context.Context, userID, postID string) error {
	result := r.db.WithContext(ctx).Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("liked", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepository) Get(ctx context.Context, userID, postID string) (*entity.Like, error) {
	var likeModel model.LikeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&likeModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToLikeEntity(&likeModel), nil
}
