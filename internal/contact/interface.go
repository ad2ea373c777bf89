package contact

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/contactrelay/internal/dto"
	"github.com/joshu-sajeev/contactrelay/internal/models"
)

// SubmissionRecorder stores the outcome of a relay attempt.
type SubmissionRecorder interface {
	Create(ctx context.Context, sub *models.Submission) error
}

// ContactServiceInterface validates a submission and relays it to the mail
// provider.
type ContactServiceInterface interface {
	Send(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, error)
}

// HandlerInterface defines the HTTP surface of the relay.
type HandlerInterface interface {
	Health(c *gin.Context)
	Submit(c *gin.Context)
}
