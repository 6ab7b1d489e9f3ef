package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/core/template"
)

type gradingApi struct {
	svc         *grading.Service
	settingsSvc *settings.Service
	templateSvc *template.Service
	validate    *validator.Validate
}

func registerGradingAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *grading.Service,
	settingsSvc *settings.Service,
	templateSvc *template.Service,
	validate *validator.Validate,
) {
	api := gradingApi{
		svc:         svc,
		settingsSvc: settingsSvc,
		templateSvc: templateSvc,
		validate:    validate,
	}

	g.GET("/summary", api.summary, jwt)

	pg := g.Group("/periods", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create)

	// detail endpoints
	dg := pg.Group("/:id", ctxPeriodMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/recalculate", api.recalculate)
	dg.POST("/courses", api.addCourse)

	// course endpoints
	cg := dg.Group("/courses/:index")
	cg.GET("", api.retrieveCourse)
	cg.PUT("", api.updateCourse)
	cg.DELETE("", api.destroyCourse)
	cg.POST("/what-if", api.whatIf)
	cg.POST("/what-if/commit", api.commitWhatIf)
	cg.POST("/import-template/:templateId", api.importTemplate)
}

type (
	courseResponse struct {
		grading.Course
		LetterGrade   string  `json:"letter_grade"`
		WeightTotal   float64 `json:"weight_total"`
		WeightWarning bool    `json:"weight_warning"`
	}

	periodResponse struct {
		grading.GradingPeriod
		Courses []courseResponse `json:"courses"`
	}

	addCourseResponse struct {
		GradingPeriodID string `json:"grading_period_id"`
		CourseIndex     int    `json:"course_index"`
	}
)

func newCourseResponse(c grading.Course) courseResponse {
	return courseResponse{
		Course:        c,
		LetterGrade:   grading.LetterGrade(c.Grade),
		WeightTotal:   c.WeightTotal(),
		WeightWarning: c.HasWeightWarning(),
	}
}

func newPeriodResponse(gp grading.GradingPeriod) periodResponse {
	courses := make([]courseResponse, 0, len(gp.Courses))
	for _, c := range gp.Courses {
		courses = append(courses, newCourseResponse(c))
	}
	return periodResponse{GradingPeriod: gp, Courses: courses}
}

// userAndScale returns the ID of the authenticated user and their GPA scale.
func (api *gradingApi) userAndScale(ctx echo.Context) (string, grading.Scale, error) {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return "", grading.Scale{}, errors.Wrap(err, "getting context user")
	}
	scale, err := api.settingsSvc.Scale(ctx.Request().Context(), userID)
	if err != nil {
		return "", grading.Scale{}, errors.Wrap(err, "getting user scale")
	}
	return userID, scale, nil
}

// Handlers

func (api *gradingApi) query(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var ord Ordering
	ord.Bind(ctx)

	periods, err := api.svc.Query(ctx.Request().Context(), userID, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying grading periods")
	}

	resp := make([]periodResponse, 0, len(periods))
	for _, gp := range periods {
		resp = append(resp, newPeriodResponse(gp))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *gradingApi) create(ctx echo.Context) error {
	var data grading.NewGradingPeriod
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGradingPeriod")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err := api.svc.Create(ctx.Request().Context(), userID, data, scale)
	if err != nil {
		return errors.Wrap(err, "creating grading period")
	}
	return ctx.JSON(http.StatusCreated, newPeriodResponse(gp))
}

func (api *gradingApi) summary(ctx echo.Context) error {
	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	summary, err := api.svc.Summary(ctx.Request().Context(), userID, scale)
	if err != nil {
		return errors.Wrap(err, "summarizing grading periods")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *gradingApi) retrieve(ctx echo.Context) error {
	gp, err := getContextPeriod(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}

func (api *gradingApi) update(ctx echo.Context) error {
	gp, err := getContextPeriod(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}

	var data grading.UpdateGradingPeriod
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGradingPeriod")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err = api.svc.Update(ctx.Request().Context(), userID, gp.ID, data, scale)
	if err != nil {
		return errors.Wrap(err, "updating grading period")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}

func (api *gradingApi) destroy(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err = api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting grading period")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradingApi) recalculate(ctx echo.Context) error {
	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err := api.svc.Recalculate(ctx.Request().Context(), userID, ctx.Param("id"), scale)
	if err != nil {
		return errors.Wrap(err, "recalculating grading period")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}

func (api *gradingApi) addCourse(ctx echo.Context) error {
	var data grading.Course
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Course")
	}
	if err := grading.ValidateCourse(api.validate, &data); err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, idx, err := api.svc.AddCourse(ctx.Request().Context(), userID, ctx.Param("id"), data, scale)
	if err != nil {
		return errors.Wrap(err, "adding course")
	}
	return ctx.JSON(http.StatusCreated, addCourseResponse{GradingPeriodID: gp.ID, CourseIndex: idx})
}

func (api *gradingApi) retrieveCourse(ctx echo.Context) error {
	gp, err := getContextPeriod(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving object from context")
	}
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}
	if idx >= len(gp.Courses) {
		return grading.ErrCourseNotFound
	}
	return ctx.JSON(http.StatusOK, newCourseResponse(gp.Courses[idx]))
}

func (api *gradingApi) updateCourse(ctx echo.Context) error {
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}

	var data grading.Course
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Course")
	}
	if err = grading.ValidateCourse(api.validate, &data); err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err := api.svc.UpdateCourse(ctx.Request().Context(), userID, ctx.Param("id"), idx, data, scale)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}

func (api *gradingApi) destroyCourse(ctx echo.Context) error {
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	gp, err := api.svc.RemoveCourse(ctx.Request().Context(), userID, ctx.Param("id"), idx, scale)
	if err != nil {
		return errors.Wrap(err, "removing course")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}

// importTemplate replaces the categories of a course with the ones of a public template.
func (api *gradingApi) importTemplate(ctx echo.Context) error {
	idx, err := indexParam(ctx, "index")
	if err != nil {
		return err
	}

	userID, scale, err := api.userAndScale(ctx)
	if err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	_, course, err := api.svc.GetCourse(rctx, userID, ctx.Param("id"), idx)
	if err != nil {
		return errors.Wrap(err, "finding course")
	}

	cats, err := api.templateSvc.Import(rctx, ctx.Param("templateId"))
	if err != nil {
		return errors.Wrap(err, "importing template")
	}
	course.Manual = false
	course.Categories = cats

	gp, err := api.svc.UpdateCourse(rctx, userID, ctx.Param("id"), idx, course, scale)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, newPeriodResponse(gp))
}
