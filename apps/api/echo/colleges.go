package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/college"
)

type collegeApi struct {
	dir      *college.Directory
	validate *validator.Validate
}

func registerCollegeAPI(g *echo.Group, dir *college.Directory, validate *validator.Validate) {
	api := collegeApi{
		dir:      dir,
		validate: validate,
	}

	g.GET("/colleges", api.query)
}

// Handlers

// query searches the college directory. Unlike other listings, out of range `page` or `limit` params are rejected.
func (api *collegeApi) query(ctx echo.Context) error {
	pr := core.PageRequest{Page: 1, Limit: core.DefaultPageLimit}
	if err := ctx.Bind(&pr); err != nil {
		return errors.Wrap(err, "binding to PageRequest")
	}
	if err := api.validate.Struct(pr); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, api.dir.Search(ctx.QueryParam("query"), pr))
}
