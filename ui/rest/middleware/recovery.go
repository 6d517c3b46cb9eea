package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	pkgError "github.com/promptdeck/promptdeck/pkg/error"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

// Recovery turns handler panics into JSON error responses. Domain errors
// carry their own status and code; anything else becomes a 500.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var response utils.ResponseData
			switch err := r.(type) {
			case pkgError.GenericError:
				response = utils.ResponseData{
					Status:  err.StatusCode(),
					Code:    err.ErrCode(),
					Message: err.Error(),
				}
			case error:
				logrus.Errorf("[RECOVERY] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
				response = utils.ResponseData{
					Status:  500,
					Code:    "INTERNAL_SERVER_ERROR",
					Message: err.Error(),
				}
			default:
				logrus.Errorf("[RECOVERY] Unhandled panic on %s %s: %v", c.Method(), c.Path(), r)
				response = utils.ResponseData{
					Status:  500,
					Code:    "INTERNAL_SERVER_ERROR",
					Message: fmt.Sprintf("%v", r),
				}
			}

			_ = c.Status(response.Status).JSON(response)
		}()

		return c.Next()
	}
}
