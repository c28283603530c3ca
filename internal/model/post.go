package model

import (
	"time"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey"`
	UserID      uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	Image       string    `gorm:"type:varchar(512);not null" json:"image"`
	ImageFilter string    `gorm:"type:varchar(32);not null;default:'normal'" json:"image_filter"`
	Video       *string   `gorm:"type:varchar(512)" json:"video"`
	Mp3         *string   `gorm:"type:varchar(512)" json:"mp3"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 查询期注入的聚合计数，非表字段
	LikesCount    int64 `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int64 `gorm:"->;-:migration" json:"comments_count"`

	// 关联关系
	User User  `gorm:"foreignKey:UserID;references:ID"`
	Tags []Tag `gorm:"many2many:post_tags"`
}

func (Post) TableName() string {
	return "posts"
}
