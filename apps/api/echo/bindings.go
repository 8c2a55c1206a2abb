package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindID reads the positive integer path parameter name; anything else is a 404.
func bindID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bindBody decodes the request body into dest.
func bindBody(ctx echo.Context, dest interface{}, what string) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dest); err != nil {
		if herr, ok := err.(*echo.HTTPError); ok {
			return herr
		}
		return errors.Wrap(err, "binding to "+what)
	}
	return nil
}
