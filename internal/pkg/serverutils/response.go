package serverutils

import "github.com/gofiber/fiber/v2"

// HttpError is an error that carries the HTTP status it should be
// reported with. Services return it when a failure maps to a specific
// status instead of a generic 500.
type HttpError struct {
	Status  int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewHttpError(status int, message string) *HttpError {
	return &HttpError{
		Status:  status,
		Message: message,
	}
}

func NotFound(message string) *HttpError {
	return NewHttpError(fiber.StatusNotFound, message)
}

func BadRequest(message string) *HttpError {
	return NewHttpError(fiber.StatusBadRequest, message)
}

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"message": message,
	}
}
