package utils

import (
	"context"
	"hostel-server/models"
	"hostel-server/storage"
	"strings"

	"github.com/kataras/iris/v12"
)

const currentUserKey = "currentUser"

// AccessToken is the payload of the bearer token.
type AccessToken struct {
	UserID uint        `json:"userId"`
	Role   models.Role `json:"role"`
}

type TokenVerifier interface {
	VerifyAccessToken(token string) (*AccessToken, error)
}

type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

func bearerToken(ctx iris.Context) string {
	header := ctx.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// Authenticate verifies the bearer token and loads its user into the context.
func Authenticate(verifier TokenVerifier, users UserLoader) iris.Handler {
	return func(ctx iris.Context) {
		token := bearerToken(ctx)
		if token == "" {
			CreateError(ctx, iris.StatusUnauthorized, "Authentication required. Please provide a valid token.")
			return
		}

		claims, err := verifier.VerifyAccessToken(token)
		if err != nil {
			CreateError(ctx, iris.StatusUnauthorized, "Invalid or expired token. Please login again.")
			return
		}

		user, err := users.FindByID(ctx.Request().Context(), claims.UserID)
		if storage.IsNotFound(err) {
			CreateError(ctx, iris.StatusUnauthorized, "User not found. Please login again.")
			return
		}
		if err != nil {
			CreateInternalServerError(ctx, err)
			return
		}

		ctx.Values().Set(currentUserKey, user)
		ctx.Next()
	}
}

// RequireVerified must run after Authenticate.
func RequireVerified(ctx iris.Context) {
	user := CurrentUser(ctx)
	if user == nil || !user.IsEmailVerified {
		CreateError(ctx, iris.StatusForbidden, "Please verify your email address before accessing this resource.")
		return
	}
	ctx.Next()
}

// AdminOnly must run after Authenticate. The role is read from the stored
// user, so a demotion takes effect before the token expires.
func AdminOnly(ctx iris.Context) {
	user := CurrentUser(ctx)
	if user == nil || !user.IsAdmin() {
		CreateError(ctx, iris.StatusForbidden, "Access denied. Admin privileges required.")
		return
	}
	ctx.Next()
}

func CurrentUser(ctx iris.Context) *models.User {
	user, _ := ctx.Values().Get(currentUserKey).(*models.User)
	return user
}
