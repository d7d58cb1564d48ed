package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. uid
// and role must both be present; a token without them is structurally valid
// but cannot be attributed to an operator, so it is rejected with 401.
func ctxClaims(c echo.Context) (uid, role string, err error) {
	uid, _ = c.Get("uid").(string)
	role, _ = c.Get("role").(string)
	if uid == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, role, nil
}

// ctxEmail returns the email claim, or "" when the token carries none.
func ctxEmail(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}
