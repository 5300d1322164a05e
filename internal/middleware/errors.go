package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders every error as {"message": ...}. Anything that is not an
// *echo.HTTPError is logged and reported as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = fmt.Sprint(m)
		}
		if code >= http.StatusInternalServerError {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, echo.Map{"message": message})
	}
	if writeErr != nil {
		logger.Log.Warn("failed to write error response", zap.Error(writeErr))
	}
}
