package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
)

const contextObjectKey = "object"

// ctxPeriodMiddleware loads the grading period named by the `:id` param.
// Periods of other users are reported as not found.
func ctxPeriodMiddleware(svc *grading.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := getContextUserID(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			gp, err := svc.Get(ctx.Request().Context(), userID, ctx.Param("id"))
			if err != nil {
				return errors.Wrap(err, "finding grading period by ID")
			}
			ctx.Set(contextObjectKey, gp)
			return next(ctx)
		}
	}
}

func getContextPeriod(ctx echo.Context) (grading.GradingPeriod, error) {
	if gp, ok := ctx.Get(contextObjectKey).(grading.GradingPeriod); ok {
		return gp, nil
	}
	return grading.GradingPeriod{}, errors.New("grading period not found in echo.Context")
}
