package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
)

// respondError maps domain error kinds to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errs.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errs.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
