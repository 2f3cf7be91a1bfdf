package handler

import (
	"encoding/json"
	"net/http"

	"libris/internal/errs"
	"libris/internal/http-api/dto"
	"libris/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	authorService service.AuthorService
}

func NewAuthorHandler(authorService service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	authors.GET("/get_authors", h.GetAuthors)
	authors.GET("/get_author/:slug", h.GetAuthor)
	authors.POST("/upload_author", h.UploadAuthor)
	authors.PUT("/update_author/:idAuthor", h.UpdateAuthor)
	authors.DELETE("/delete_author/:idAuthor", h.DeleteAuthor)
}

func (h *AuthorHandler) GetAuthors(c *gin.Context) {
	authors, err := h.authorService.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "authors retrieved", authors)
}

func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	author, err := h.authorService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "author retrieved", author)
}

func (h *AuthorHandler) UploadAuthor(c *gin.Context) {
	var in dto.CreateAuthorDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}
	if err := decodeJSONField(c, "table_info", &in.TableInfo); err != nil {
		fail(c, err)
		return
	}
	if err := decodeJSONField(c, "fun_facts", &in.FunFacts); err != nil {
		fail(c, err)
		return
	}

	image, err := readFilePayload(c, "image", "image/")
	if err != nil {
		fail(c, err)
		return
	}

	author, err := h.authorService.Upload(c.Request.Context(), in, *image)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "author uploaded", author)
}

func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var in dto.UpdateAuthorDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}
	if err := decodeJSONField(c, "table_info", &in.TableInfo); err != nil {
		fail(c, err)
		return
	}
	if err := decodeJSONField(c, "fun_facts", &in.FunFacts); err != nil {
		fail(c, err)
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

	if err := h.authorService.Update(c.Request.Context(), c.Param("idAuthor"), in, image); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "author updated", nil)
}

func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	if err := h.authorService.Delete(c.Request.Context(), c.Param("idAuthor")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "author deleted", nil)
}

// decodeJSONField decodes a JSON-encoded multipart string field into dst.
// Absent or empty fields leave dst untouched.
func decodeJSONField(c *gin.Context, field string, dst any) error {
	raw := c.PostForm(field)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errs.Validation("invalid JSON in field: " + field)
	}
	return nil
}
