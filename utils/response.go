package utils

import (
	"errors"

	"github.com/kataras/iris/v12"
)

func CreateError(ctx iris.Context, status int, message string) {
	ctx.StopWithJSON(status, iris.Map{
		"success": false,
		"error":   message,
	})
}

func CreateNotFound(ctx iris.Context, message string) {
	CreateError(ctx, iris.StatusNotFound, message)
}

// CreateInternalServerError passes the error message through to the caller.
func CreateInternalServerError(ctx iris.Context, err error) {
	ctx.Application().Logger().Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	message := "Internal server error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	CreateError(ctx, iris.StatusInternalServerError, message)
}

// HandleError writes an AppError with its own status and anything else as a 500.
func HandleError(ctx iris.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		CreateInternalServerError(ctx, err)
		return
	}

	body := iris.Map{
		"success": false,
		"error":   appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	ctx.StopWithJSON(appErr.Status, body)
}

// Pages is the number of pages needed to show total items, limit per page.
func Pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ReadPage parses the page and limit query parameters.
func ReadPage(ctx iris.Context, defaultLimit, maxLimit int) (page, limit int) {
	page = ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	limit = ctx.URLParamIntDefault("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
