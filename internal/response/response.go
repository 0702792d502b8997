package response

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with the same envelope: {"status":"success","data":...}
// or {"status":"fail","message":...}. Existing clients parse this shape, so it
// must not change.

func Success(c *fiber.Ctx, code int, data fiber.Map) error {
	return c.Status(code).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// SuccessList additionally carries the result count, like the list endpoints
// always have.
func SuccessList(c *fiber.Ctx, results int, data fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

func Fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "fail",
		"message": message,
	})
}
