package handler

import (
	"net/http"

	"libris/internal/http-api/dto"
	"libris/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	tags.GET("/get_tags", h.GetTags)
	tags.POST("/new_tag", h.NewTag)
	tags.DELETE("/delete_tag/:idTag", h.DeleteTag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "tags retrieved", tags)
}

func (h *TagHandler) NewTag(c *gin.Context) {
	var in dto.TagDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), in.Tag)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "tag created", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.Delete(c.Request.Context(), c.Param("idTag")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "tag deleted", nil)
}
