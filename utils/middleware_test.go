package utils

import (
	"context"
	"errors"
	"hostel-server/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type staticVerifier struct{}

func (staticVerifier) VerifyAccessToken(token string) (*AccessToken, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &AccessToken{UserID: 7, Role: models.RoleUser}, nil
}

type stubUsers struct {
	user *models.User
	err  error
}

func (s stubUsers) FindByID(_ context.Context, _ uint) (*models.User, error) {
	return s.user, s.err
}

func TestAuthenticateLookupErrors(t *testing.T) {
	tests := []struct {
		name  string
		users stubUsers
		want  int
	}{
		{"found", stubUsers{user: &models.User{FullName: "Ali"}}, http.StatusOK},
		{"deleted user", stubUsers{err: gorm.ErrRecordNotFound}, http.StatusUnauthorized},
		{"database down", stubUsers{err: errors.New("connection refused")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := iris.New()
			app.Logger().SetLevel("disable")
			app.Get("/me", Authenticate(staticVerifier{}, tt.users), func(ctx iris.Context) {
				ctx.JSON(iris.Map{"user": CurrentUser(ctx).FullName})
			})
			if err := app.Build(); err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest("GET", "/me", nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
