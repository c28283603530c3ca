package dto

// TagDTO 标签出参
type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TagCreateDTO 标签新增入参
type TagCreateDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=50"`
}
