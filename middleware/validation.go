package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/contactrelay/common"
	"github.com/joshu-sajeev/contactrelay/internal/config"
)

// Bind decodes the JSON body into dest. An empty body leaves dest at its zero
// value so field validation reports what is missing. Malformed JSON is pushed
// as a 400 and Bind returns false.
func Bind[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		c.Error(common.Errf(http.StatusBadRequest, "%s", config.MsgInvalidBody))
		return false
	}

	return true
}
