package utils

import (
	"regexp"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/cors"
)

var lanOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1|192\.168\.\d{1,3}\.\d{1,3}|10\.\d{1,3}\.\d{1,3}\.\d{1,3})(:\d+)?$`)

// AllowedOrigin reports whether a browser origin may call the API.
// An empty origin is a same-origin or non-browser request.
func AllowedOrigin(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return lanOrigin.MatchString(origin)
}

// CORS is meant to be registered with app.UseRouter. Disallowed origins get
// no CORS headers but the request itself still runs.
func CORS(allowed ...string) iris.Handler {
	return cors.New().
		AllowOriginMatcherFunc(func(origin string) bool {
			return AllowedOrigin(origin, allowed)
		}).
		HandleErrorFunc(func(ctx iris.Context, _ error) {
			if ctx.Method() == iris.MethodOptions {
				ctx.StatusCode(iris.StatusNoContent)
				return
			}
			ctx.Next()
		}).
		AllowHeaders("Authorization", "Content-Type", "X-Requested-With").
		Handler()
}
