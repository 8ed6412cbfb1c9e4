package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// errNoUser is returned when the context has no usable user identity.
var errNoUser = errors.New("no user in context")

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64.  JWT numeric claims decode as float64, but a
// few token producers encode the subject as a string, so both shapes
// are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case float64:
		if t > 0 {
			return uint64(t), nil
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, errNoUser
}

// getRole extracts the role stored by the JWT middleware.
func getRole(c echo.Context) (string, error) {
	if s, ok := c.Get("role").(string); ok && s != "" {
		return s, nil
	}
	return "", errNoUser
}
