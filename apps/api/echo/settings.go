package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/settings"
)

type settingsApi struct {
	svc      *settings.Service
	validate *validator.Validate
}

func registerSettingsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *settings.Service, validate *validator.Validate) {
	api := settingsApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/settings", jwt)
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
	sg.GET("/scales", api.queryScales)
	sg.POST("/recalculate", api.recalculate)
}

type recalculateResponse struct {
	Recalculated int `json:"recalculated"`
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Get(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Update(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "updating settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) queryScales(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	s, err := api.svc.Get(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, settings.Scales(s.CustomScale))
}

func (api *settingsApi) recalculate(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	n, err := api.svc.RecalculateAll(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "recalculating grading periods")
	}
	return ctx.JSON(http.StatusOK, recalculateResponse{Recalculated: n})
}
