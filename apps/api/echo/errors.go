package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/session"
	"github.com/educamais/educamais/core/teacher"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, session.ErrNoSession.Error())
	errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "token ausente ou malformado")
	errInvalidToken = echo.NewHTTPError(http.StatusUnauthorized, "token inválido ou expirado")
	errInvalidID    = echo.NewHTTPError(http.StatusNotFound, "não encontrado")

	errRefreshExpired = echo.NewHTTPError(http.StatusForbidden, "renovação expirada: faça login novamente")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		origErr := errors.Cause(err)
		if fldErrs, ok := core.TranslateErrors(origErr, translator); ok {
			code = http.StatusBadRequest
			message = fldErrs
		} else {
			switch e := origErr.(type) {
			case *echo.HTTPError:
				if e.Internal != nil {
					if herr, ok := e.Internal.(*echo.HTTPError); ok {
						e = herr
					}
				}
				code = e.Code
				message = e.Message
			case *core.ValidationError:
				code = http.StatusBadRequest
				message = e.Error()
			case *core.ConflictError:
				code = http.StatusConflict
				message = e.Error()
			case *core.RemoteError:
				code = http.StatusBadGateway
				message = e.Error()
				logger.Error(e.Details(), logArgs(ctx, err)...)
			default:
				switch origErr {
				case teacher.ErrInvalidCredentials:
					code = http.StatusBadRequest
					message = origErr.Error()
				case session.ErrNoSession:
					code = http.StatusUnauthorized
					message = origErr.Error()
				case core.ErrNotFound:
					code = http.StatusNotFound
					message = "não encontrado"
				default: // any other error is a server error
					code = http.StatusInternalServerError
					msg := http.StatusText(http.StatusInternalServerError)
					message = msg
					logger.Error(msg, logArgs(ctx, errors.Wrap(err, msg))...)

					// shutting down...
					if core.IsShutdown(err) {
						signalShutdown()
					}
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// logArgs returns the logger arguments for err, with the request session if any.
func logArgs(ctx echo.Context, err error) []interface{} {
	args := []interface{}{err}
	if sess, sErr := session.FromContext(ctx.Request().Context()); sErr == nil {
		args = append(args, sess)
	}
	return args
}
