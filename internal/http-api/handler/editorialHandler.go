package handler

import (
	"net/http"

	"libris/internal/http-api/dto"
	"libris/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type EditorialHandler struct {
	editorialService service.EditorialService
}

func NewEditorialHandler(editorialService service.EditorialService) *EditorialHandler {
	return &EditorialHandler{editorialService: editorialService}
}

func (h *EditorialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	editorials := rg.Group("/editorials")
	editorials.GET("/get_editorials", h.GetEditorials)
	editorials.POST("/upload_editorial", h.UploadEditorial)
	editorials.PUT("/update_editorial/:idEditorial", h.UpdateEditorial)
	editorials.DELETE("/delete_editorial/:idEditorial", h.DeleteEditorial)
}

func (h *EditorialHandler) GetEditorials(c *gin.Context) {
	editorials, err := h.editorialService.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "editorials retrieved", editorials)
}

func (h *EditorialHandler) UploadEditorial(c *gin.Context) {
	var in dto.CreateEditorialDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	image, err := readFilePayload(c, "image", "image/")
	if err != nil {
		fail(c, err)
		return
	}

	editorial, err := h.editorialService.Upload(c.Request.Context(), in, *image)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "editorial uploaded", editorial)
}

func (h *EditorialHandler) UpdateEditorial(c *gin.Context) {
	var in dto.UpdateEditorialDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	var image *service.FilePayload
	if _, err := c.FormFile("image"); err == nil {
		image, err = readFilePayload(c, "image", "image/")
		if err != nil {
			fail(c, err)
			return
		}
	}

	editorial, err := h.editorialService.Update(c.Request.Context(), c.Param("idEditorial"), in, image)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "editorial updated", editorial)
}

func (h *EditorialHandler) DeleteEditorial(c *gin.Context) {
	if err := h.editorialService.Delete(c.Request.Context(), c.Param("idEditorial")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "editorial deleted", nil)
}
