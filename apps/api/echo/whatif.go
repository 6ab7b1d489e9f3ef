package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
)

// whatIf compares a posted draft of a course with the stored course. Nothing is saved.
func (api *gradingApi) whatIf(ctx echo.Context) error {
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}

	var draft grading.Course
	if err = ctx.Bind(&draft); err != nil {
		return errors.Wrap(err, "binding to Course")
	}
	if err = grading.ValidateCourse(api.validate, &draft); err != nil {
		return err
	}

	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	diff, err := api.svc.WhatIf(ctx.Request().Context(), userID, ctx.Param("id"), idx, draft)
	if err != nil {
		return errors.Wrap(err, "simulating course")
	}
	return ctx.JSON(http.StatusOK, diff)
}

func (api *gradingApi) commitWhatIf(ctx echo.Context) error {
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}

	var draft grading.Course
	if err = ctx.Bind(&draft); err != nil {
		return errors.Wrap(err, "binding to Course")
	}
	if err = grading.ValidateCourse(api.validate, &draft); err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err := api.svc.CommitWhatIf(ctx.Request().Context(), userID, ctx.Param("id"), idx, draft, scale)
	if err != nil {
		return errors.Wrap(err, "committing simulation")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}
