package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report wire names, not Go field names, in validation messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestError carries an HTTP status and a caller-facing detail message.
type requestError struct {
	status int
	detail string
}

func (e *requestError) Error() string { return e.detail }

// readAndValidate binds the JSON body into req, applies struct defaults and
// runs validation.
func readAndValidate(c echo.Context, req interface{}) *requestError {
	if err := c.Bind(req); err != nil {
		return &requestError{status: http.StatusBadRequest, detail: "malformed request body"}
	}
	if err := defaults.Set(req); err != nil {
		return &requestError{status: http.StatusInternalServerError, detail: "internal error"}
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return &requestError{status: http.StatusBadRequest, detail: validationDetail(err)}
	}
	return nil
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s needs at least %s elements", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}
