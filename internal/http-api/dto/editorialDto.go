package dto

type CreateEditorialDTO struct {
	Editorial string `form:"editorial" binding:"required"`
}

type UpdateEditorialDTO struct {
	Editorial *string `form:"editorial"`
}
