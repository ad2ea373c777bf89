package contact

import (
	"testing"

	"github.com/joshu-sajeev/contactrelay/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.ContactRequest
		wantErr error
	}{
		{
			name: "valid submission",
			req:  &dto.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hello"},
		},
		{
			name: "odd but accepted email",
			req:  &dto.ContactRequest{Name: "Ada", Email: "a@b.c", Message: "Hello"},
		},
		{
			name:    "missing name",
			req:     &dto.ContactRequest{Email: "ada@example.com", Message: "Hello"},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing email",
			req:     &dto.ContactRequest{Name: "Ada", Message: "Hello"},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing message",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada@example.com"},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing field wins over bad email",
			req:     &dto.ContactRequest{Name: "Ada", Email: "not-an-email"},
			wantErr: ErrMissingField,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: ErrMissingField,
		},
		{
			name:    "no at sign",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada.example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "no dot after at",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada@example", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "whitespace inside",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada lovelace@example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "no-break space inside",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada\u00a0lovelace@example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "vertical tab inside",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada\vx@example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "line separator in domain",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada@exa\u2028mple.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "ideographic space inside",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada\u3000x@example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "byte order mark inside",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada\ufeffx@example.com", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "non-ascii letters are not whitespace",
			req:  &dto.ContactRequest{Name: "Zoë", Email: "zoë@exämple.com", Message: "Hello"},
		},
		{
			name:    "trailing whitespace",
			req:     &dto.ContactRequest{Name: "Ada", Email: "ada@example.com ", Message: "Hello"},
			wantErr: ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := Validate(tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Name, sub.Name)
			assert.Equal(t, tt.req.Email, sub.Email)
			assert.Equal(t, tt.req.Message, sub.Message)
		})
	}
}
