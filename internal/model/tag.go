package model

import "time"

type Tag struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_name" json:"name"`
	CreatedAt time.Time
}

func (Tag) TableName() string {
	return "tags"
}
