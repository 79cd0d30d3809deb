// Package response defines the uniform envelope every endpoint replies with.
// The envelope shape is the wire contract clients depend on; no handler
// writes a response any other way.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the single outbound shape.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// Send sets the HTTP status from the envelope and writes it as the body.
func Send(c *fiber.Ctx, env Envelope) error {
	if env.StatusCode == 0 {
		env.StatusCode = fiber.StatusOK
	}
	return c.Status(env.StatusCode).JSON(env)
}

// OK sends a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return Send(c, Envelope{Success: true, StatusCode: fiber.StatusOK, Message: message, Data: data})
}

// Fail sends a failure envelope with the given status.
func Fail(c *fiber.Ctx, statusCode int, message string) error {
	return Send(c, Envelope{Success: false, StatusCode: statusCode, Message: message})
}

// ValidationMessage renders validator violations as one human-readable line.
func ValidationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
