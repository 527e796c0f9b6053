package routes

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// success and fail write the response envelope every endpoint shares.
func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string, errs any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"errors":  errs,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var details []fiber.Map
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details = append(details, fiber.Map{
				"field": fe.Field(),
				"rule":  fe.Tag(),
				"param": fe.Param(),
			})
		}
	}
	return fail(c, fiber.StatusUnprocessableEntity, "Validation Failed", details)
}

// parseID validates the id path parameter as a UUID; a malformed id is a
// validation failure, matching the request-body rules. On failure the
// response is already written and ok is false.
func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = fail(c, fiber.StatusUnprocessableEntity, "Validation Failed", []fiber.Map{
			{"field": "id", "rule": "uuid"},
		})
		return uuid.Nil, false
	}
	return id, true
}
