package api

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"alcyxob/coaching-app/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerFormNames sync.Once

// useFormFieldNames makes validation errors report form field names.
func useFormFieldNames() {
	registerFormNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}

// bindForm binds a urlencoded or multipart form. Failures are returned as
// service.InputError so they are reported like any other invalid input.
func bindForm(c *gin.Context, req any) error {
	err := c.ShouldBind(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return &service.InputError{Reason: fe.Field() + " is required"}
		case "gt", "min":
			return &service.InputError{Reason: fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())}
		default:
			return &service.InputError{Reason: fe.Field() + " is invalid"}
		}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return &service.InputError{Reason: fmt.Sprintf("%q is not a number", numErr.Num)}
	}
	return &service.InputError{Reason: "malformed form"}
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.InputError{Reason: "invalid " + name}
	}
	return id, nil
}

// parseOptionalInt reads an optional integer form value.
func parseOptionalInt(raw, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &service.InputError{Reason: field + " must be a whole number"}
	}
	return &v, nil
}

// checked interprets an HTML checkbox value.
func checked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
