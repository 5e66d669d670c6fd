package model

import "gorm.io/gorm"

// AutoMigrate creates the schema on databases not managed by goose
// (SQLite for local runs and tests).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&FollowModel{},
		&PostModel{},
		&CommentModel{},
		&LikeModel{},
	)
}
