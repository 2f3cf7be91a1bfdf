package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"libris/internal/errs"
	"libris/internal/http-api/dto"
	"libris/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, message string, body any) {
	c.JSON(status, dto.Envelope{Success: true, Message: message, Body: body})
}

// fail maps the error to its HTTP status and writes the failure envelope.
// Infrastructure details are not echoed back to the client.
func fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusServiceUnavailable {
		message = "service temporarily unavailable"
	}
	c.JSON(status, dto.Envelope{Success: false, Message: message})
}

func failValidation(c *gin.Context, message string) {
	fail(c, errs.Validation(message))
}

// readFilePayload pulls one multipart file part into memory and checks its
// declared content type against the allowed prefixes.
func readFilePayload(c *gin.Context, field string, allowed ...string) (*service.FilePayload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, errs.Validation("missing file field: " + field)
	}
	if !contentTypeAllowed(header, allowed) {
		return nil, errs.Validation("unsupported file type for field: " + field)
	}

	f, err := header.Open()
	if err != nil {
		return nil, errs.Validation("cannot read file field: " + field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.Validation("cannot read file field: " + field)
	}
	return &service.FilePayload{Filename: header.Filename, Data: data}, nil
}

func contentTypeAllowed(header *multipart.FileHeader, allowed []string) bool {
	ct := header.Header.Get("Content-Type")
	for _, prefix := range allowed {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// userID returns the authenticated user id set by the auth middleware.
func userID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
