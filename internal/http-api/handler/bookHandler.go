package handler

import (
	"net/http"

	"libris/internal/http-api/dto"
	"libris/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.GET("/get_books", h.GetBooks)
	books.GET("/get_book/:slug", h.GetBook)
	books.POST("/upload_book", h.UploadBook)
	books.PUT("/update_book/:idBook", h.UpdateBook)
	books.DELETE("/delete_book/:idBook", h.DeleteBook)
	books.POST("/save_book/:idBook", h.SaveBook)
	books.POST("/rank_book/:idBook", h.RankBook)
}

func (h *BookHandler) GetBooks(c *gin.Context) {
	var q dto.BookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		failValidation(c, err.Error())
		return
	}

	resp, err := h.bookService.List(c.Request.Context(), userID(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "books retrieved", resp)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	resp, err := h.bookService.GetBySlug(c.Request.Context(), c.Param("slug"), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book retrieved", resp)
}

func (h *BookHandler) UploadBook(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	image, err := readFilePayload(c, "image", "image/")
	if err != nil {
		fail(c, err)
		return
	}
	content, err := readFilePayload(c, "book", "application/pdf", "application/epub")
	if err != nil {
		fail(c, err)
		return
	}

	book, err := h.bookService.Upload(c.Request.Context(), in, *image, *content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "book uploaded", book)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	var in dto.UpdateBookDTO
	if err := c.ShouldBind(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	// Replacement files are optional on update.
	var image, content *service.FilePayload
	if _, err := c.FormFile("image"); err == nil {
		image, err = readFilePayload(c, "image", "image/")
		if err != nil {
			fail(c, err)
			return
		}
	}
	if _, err := c.FormFile("book"); err == nil {
		content, err = readFilePayload(c, "book", "application/pdf", "application/epub")
		if err != nil {
			fail(c, err)
			return
		}
	}

	book, err := h.bookService.Update(c.Request.Context(), c.Param("idBook"), in, image, content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book updated", book)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.bookService.Delete(c.Request.Context(), c.Param("idBook")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book deleted", nil)
}

func (h *BookHandler) SaveBook(c *gin.Context) {
	saved, err := h.bookService.ToggleSaved(c.Request.Context(), userID(c), c.Param("idBook"))
	if err != nil {
		fail(c, err)
		return
	}
	message := "book removed from saved"
	if saved {
		message = "book saved"
	}
	respond(c, http.StatusOK, message, gin.H{"saved": saved})
}

func (h *BookHandler) RankBook(c *gin.Context) {
	var in dto.RankDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		failValidation(c, err.Error())
		return
	}

	rank, err := h.bookService.Rank(c.Request.Context(), userID(c), c.Param("idBook"), in.Ranking)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "book ranked", rank)
}
