package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/dto"
	"github.com/joshu-sajeev/contactrelay/middleware"
)

type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(s ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: s}
}

var _ HandlerInterface = (*ContactHandler)(nil)

// Health reports liveness. It does not look at provider configuration.
func (h *ContactHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Message: config.MsgHealthOK,
	})
}

// Submit binds the contact form, relays it and writes the provider outcome.
// Errors are pushed onto the context for middleware.ErrorHandler.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	ctx := WithMeta(c.Request.Context(), Meta{
		RequestID: middleware.GetRequestID(c),
		RemoteIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	resp, err := h.service.Send(ctx, &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, resp)
}
