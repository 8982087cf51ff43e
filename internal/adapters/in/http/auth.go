package http

import (
	"crypto/subtle"

	"orderdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const staffContextKey = "staff"

// Credentials is the single staff login of the outlet.
type Credentials struct {
	Username string
	Password string
	Staff    order.Staff
}

func basicAuth(creds Credentials) echo.MiddlewareFunc {
	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
		if !userOK || !passOK {
			return false, nil
		}
		c.Set(staffContextKey, creds.Staff)
		return true, nil
	})
}

func staffFrom(c echo.Context) (order.Staff, bool) {
	staff, ok := c.Get(staffContextKey).(order.Staff)
	return staff, ok
}
