package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educamais/educamais/core/teacher"
)

type teacherAPI struct {
	svc  *teacher.Service
	auth *Auth
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *teacher.Service, auth *Auth) {
	api := teacherAPI{svc: svc, auth: auth}

	tg := g.Group("/teachers")

	// un-authed endpoints
	tg.POST("/register", api.register)
	tg.POST("/login", api.login)

	// authed endpoints
	tg.GET("/me", api.me, jwt)
	tg.POST("/token-refresh", api.refreshToken, jwt)
}

type TokenResponse struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Teacher teacher.Teacher `json:"teacher"`
}

func (api *teacherAPI) register(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := bindBody(ctx, &data, "NewTeacher"); err != nil {
		return err
	}
	t, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherAPI) login(ctx echo.Context) error {
	var data teacher.Credentials
	if err := bindBody(ctx, &data, "Credentials"); err != nil {
		return err
	}
	t, err := api.svc.Authenticate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := api.auth.GenerateToken(api.auth.Claims(t))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Teacher: t})
}

func (api *teacherAPI) me(ctx echo.Context) error {
	t, err := api.svc.Current(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting current teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherAPI) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}
