package handlers

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var repoFullNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// RegisterValidators adds the custom form rules to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("repofullname", func(fl validator.FieldLevel) bool {
		return repoFullNamePattern.MatchString(fl.Field().String())
	})
}

// fieldErrors turns a binding error into one message per form field, keyed by struct field
// name. Errors that are not validation errors land under "Form".
func fieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"Form": "Invalid form submission."}
	}

	messages := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		if _, exists := messages[fe.Field()]; exists {
			continue
		}
		messages[fe.Field()] = fieldMessage(fe)
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "repofullname":
		return "Enter the repository as owner/name."
	}
	return "Enter a valid value."
}
