package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName   string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100)" json:"last_name"`
	Password    string    `gorm:"type:varchar(128);not null" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// FollowModel is one directed edge of the follow graph.
type FollowModel struct {
	FollowerID  string     `gorm:"type:uuid;primaryKey" json:"follower_id"`
	Follower    *UserModel `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FollowingID string     `gorm:"type:uuid;primaryKey;index" json:"following_id"`
	Following   *UserModel `gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (FollowModel) TableName() string {
	return "follows"
}
