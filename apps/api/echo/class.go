package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
)

type classAPI struct {
	svc         *class.Service
	activitySvc *activity.Service
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *class.Service, activitySvc *activity.Service) {
	api := classAPI{svc: svc, activitySvc: activitySvc}

	cg := g.Group("/classes", jwt, noStore)
	cg.GET("", api.list)
	cg.POST("", api.create)

	// detail endpoints
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
	cg.GET("/:id/activities", api.activities)
}

func (api *classAPI) list(ctx echo.Context) error {
	classes, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classAPI) create(ctx echo.Context) error {
	var data class.NewClass
	if err := bindBody(ctx, &data, "NewClass"); err != nil {
		return err
	}
	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classAPI) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting class")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classAPI) update(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	var data class.UpdateClass
	if err := bindBody(ctx, &data, "UpdateClass"); err != nil {
		return err
	}
	c, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *classAPI) destroy(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classAPI) activities(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	activities, err := api.activitySvc.List(ctx.Request().Context(), activity.Filter{ClassID: id})
	if err != nil {
		return errors.Wrap(err, "listing class activities")
	}
	return ctx.JSON(http.StatusOK, activities)
}
