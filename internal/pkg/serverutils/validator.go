package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest validates a request DTO against its `validate` tags
// and converts failures into a 400 with readable field messages.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return BadRequest("invalid request payload")
	}

	messages := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		messages[i] = fmt.Sprintf("field '%s' failed on '%s' rule", fieldErr.Field(), fieldErr.Tag())
	}
	return NewHttpError(fiber.StatusBadRequest, strings.Join(messages, "; "))
}
