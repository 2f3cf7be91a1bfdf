package dto

// TagDTO for POST /api/tags/new_tag
type TagDTO struct {
	Tag string `json:"tag" binding:"required"`
}
