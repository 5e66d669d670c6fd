package persistent

import (
	"context"

	"photo-share/internal/entity"
	"photo-share/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	GetFeed(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.Post, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	CountLikesByUser(ctx context.Context, postID, userID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return translate(err)
	}
	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var postModel model.PostModel
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&postModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

// Update writes the editable columns only; owner and creation time stay as
// they were stored.
func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	if !validID(post.ID) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"content":   post.Content,
			"image_url": post.ImageURL,
			"image_key": post.ImageKey,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post; its comments and likes go with it through the
// foreign key cascades.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetFeed returns posts authored by the users userID follows, newest first.
// A zero limit returns every such post.
func (r *postRepository) GetFeed(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, error) {
	following := r.db.Model(&model.FollowModel{}).
		Select("following_id").
		Where("follower_id = ?", userID)

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN (?)", following).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var postModels []model.PostModel
	err := query.Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return ToPostEntities(postModels), nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return ToPostEntities(postModels), nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LikeModel{}).
		Where("post_id = ? AND liked = ?", postID, true).
		Count(&count).Error
	return count, err
}

func (r *postRepository) CountLikesByUser(ctx context.Context, postID, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LikeModel{}).
		Where("post_id = ? AND user_id = ? AND liked = ?", postID, userID, true).
		Count(&count).Error
	return count, err
}
