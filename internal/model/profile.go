package model

type Profile struct {
	ID       uint64 `gorm:"primaryKey"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_profile_user"`
	ImageURL string `gorm:"type:varchar(512);column:image_url;default:'images/default_profile.png'"`
}

func (Profile) TableName() string {
	return "profiles"
}
