package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Email    string `validate:"required,email"`
	Password []byte `validate:"min=1"`
}

type editForm struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Avatar    string `validate:"omitempty,url"`
}

// formError turns validator output into one readable line.
func formError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "min":
			// min=1 on a byte slice; an empty non-nil slice passes required.
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "url":
			msgs = append(msgs, fe.Field()+" must be a URL")
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
