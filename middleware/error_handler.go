package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/contactrelay/common"
	"github.com/joshu-sajeev/contactrelay/internal/config"
)

// ErrorHandler renders the last error pushed with c.Error as a
// {success:false, error} body. Anything that is not a common.APIError is
// reported with the generic failure message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var apiErr common.APIError
		if errors.As(err, &apiErr) {
			response := gin.H{"success": false, "error": apiErr.Message}
			if apiErr.Details != "" {
				response["details"] = apiErr.Details
			}
			if apiErr.Fields != nil {
				response["fields"] = apiErr.Fields
			}
			c.JSON(apiErr.Status, response)
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   config.MsgSendFailed,
		})
	}
}
