package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// NewValidator returns the validator installed as app.Validator. Field
// names in errors use the json tag so they match the request body.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterValidation("image", isImageRef)
	return v
}

// isImageRef accepts an absolute http(s) URL or an inline base64 data URI.
func isImageRef(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,") {
		return true
	}
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fieldMessages overrides the generated message for a field/tag pair.
var fieldMessages = map[string]string{
	"email.email":            "Please provide a valid email address",
	"availableBeds.ltefield": "Available beds cannot exceed total beds",
	"images.url":             "Each image must be a valid URL",
	"images.image":           "Each image must be a valid URL",
	"cnicFront.required":     "CNIC front image is required",
	"cnicBack.required":      "CNIC back image is required",
	"token.required":         "Token is required",
	"oldPassword.required":   "Old password is required",
	"newPassword.min":        "New password must be at least 6 characters",
	"newPassword.max":        "New password must not exceed 100 characters",
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	base := field
	if i := strings.Index(base, "["); i >= 0 {
		base = base[:i]
	}
	if msg, ok := fieldMessages[base+"."+fe.Tag()]; ok {
		return msg
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "Struct.field[0]"; drop the struct name.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ValidationDetails converts validator errors into field messages.
func ValidationDetails(err error) ([]FieldError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, false
	}
	details := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		details = append(details, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return details, true
}

// HandleValidationErrors answers a failed ctx.ReadJSON.
func HandleValidationErrors(ctx iris.Context, err error) {
	if details, ok := ValidationDetails(err); ok {
		HandleError(ctx, ValidationError(details...))
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		CreateError(ctx, iris.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	CreateError(ctx, iris.StatusBadRequest, "Invalid request body")
}

// ReadBody decodes and validates the JSON body into dest. It writes the
// error response and returns false on failure.
func ReadBody(ctx iris.Context, dest interface{}) bool {
	if err := ctx.ReadJSON(dest); err != nil {
		HandleValidationErrors(ctx, err)
		return false
	}
	return true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns it in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
