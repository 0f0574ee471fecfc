package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/proposals-api/internal/api/middleware"
)

// ctxUserID extracts the requester identity injected by the Auth middleware.
// An empty value means the middleware did not run, which is reported as 401
// rather than letting an unscoped query through.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
