package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/template"
)

type templateApi struct {
	svc      *template.Service
	validate *validator.Validate
}

func registerTemplateAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *template.Service, validate *validator.Validate) {
	api := templateApi{
		svc:      svc,
		validate: validate,
	}

	tg := g.Group("/templates")

	// un-authed endpoints
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)

	// authed endpoints
	tg.POST("", api.create, jwt)
}

// Handlers

func (api *templateApi) query(ctx echo.Context) error {
	var filter template.SearchFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to SearchFilter")
	}

	page, err := api.svc.Search(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "searching templates")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *templateApi) retrieve(ctx echo.Context) error {
	tpl, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding template by ID")
	}
	return ctx.JSON(http.StatusOK, tpl)
}

func (api *templateApi) create(ctx echo.Context) error {
	var data template.NewTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	tpl, err := api.svc.Publish(ctx.Request().Context(), userID, data)
	if err != nil {
		return errors.Wrap(err, "publishing template")
	}
	return ctx.JSON(http.StatusCreated, tpl)
}
