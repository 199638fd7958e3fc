package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

var logger = config.GetLogger()

// statusForError maps business failures onto HTTP statuses. Anything not in
// the taxonomy is a 500 and gets logged with its cause redacted from the body.
func statusForError(err error) int {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorDuplicateRecord), errors.Is(err, utils.ErrorResourceInUse):
		return http.StatusConflict
	case errors.Is(err, utils.ErrorInvalidAdjustment), errors.Is(err, utils.ErrorInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, funcName string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		config.LogError(logger, "handlers", funcName, c.Request.URL.Path, nil, err)
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "validation failed",
		"errors":  utils.FormatValidationErrors(err),
	})
}

func pathId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", utils.ErrorInvalidInput)
	}
	return id, nil
}

func queryPtr(c *gin.Context, key string) *string {
	if value, ok := c.GetQuery(key); ok && value != "" {
		return &value
	}
	return nil
}
