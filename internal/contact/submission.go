package contact

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/joshu-sajeev/contactrelay/internal/dto"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEmail = errors.New("invalid email address")
)

// nonSpace is any rune that is not whitespace in the browser's sense:
// ASCII space and controls, vertical tab, Unicode separators and the BOM.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]`

// emailPattern only checks the rough shape local@domain.tld with no
// whitespace anywhere.
var emailPattern = regexp.MustCompile(`^` + nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Submission is a contact request that passed validation.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Validate checks presence of name, email and message, then the shape of the
// email. A missing field is reported even when the email is also malformed.
func Validate(req *dto.ContactRequest) (Submission, error) {
	if req == nil {
		return Submission{}, ErrMissingField
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Submission{}, err
		}

		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return Submission{}, ErrMissingField
			}
		}
		return Submission{}, ErrInvalidEmail
	}

	return Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}, nil
}
