package routes

import (
	"hostel-server/models"
	"net/http"
	"regexp"
	"strings"
	"testing"
)

var tokenInLink = regexp.MustCompile(`token=([0-9a-f]+)`)

func linkToken(t *testing.T, text string) string {
	t.Helper()
	m := tokenInLink.FindStringSubmatch(text)
	if m == nil {
		t.Fatalf("no token link in mail:\n%s", text)
	}
	return m[1]
}

func TestRegisterVerifyLogin(t *testing.T) {
	e := newTestEnv(t)
	register := map[string]string{
		"fullName":  "  Ali Khan ",
		"email":     "Ali@Example.com",
		"password":  "secret123",
		"cnicFront": "https://example.com/front.png",
		"cnicBack":  "https://example.com/back.png",
	}

	res := e.do("POST", "/api/auth/register", "", register)
	e.expect(res, http.StatusCreated, "")
	user := res.obj("user")
	if user["email"] != "ali@example.com" || user["fullName"] != "Ali Khan" || user["isEmailVerified"] != false {
		t.Fatalf("unexpected user %v", user)
	}
	if _, ok := user["password"]; ok {
		t.Fatal("password must never be serialized")
	}

	mail := e.mailer.last()
	if mail.To != "ali@example.com" || !strings.Contains(mail.Text, "/verify-email?token=") {
		t.Fatalf("verification mail not sent: %+v", mail)
	}
	verifyToken := linkToken(t, mail.Text)

	res = e.do("POST", "/api/auth/register", "", register)
	e.expect(res, http.StatusConflict, "User with this email already exists")

	res = e.do("POST", "/api/auth/login", "", map[string]string{"email": "ali@example.com", "password": "secret123"})
	e.expect(res, http.StatusForbidden, "Please verify your email address before logging in.")

	res = e.do("POST", "/api/auth/verify-email", "", map[string]string{"token": "deadbeef"})
	e.expect(res, http.StatusBadRequest, "Invalid or expired verification token")

	res = e.do("POST", "/api/auth/verify-email", "", map[string]string{"token": verifyToken})
	e.expect(res, http.StatusOK, "")

	// The token is cleared once used.
	res = e.do("POST", "/api/auth/verify-email", "", map[string]string{"token": verifyToken})
	e.expect(res, http.StatusBadRequest, "Invalid or expired verification token")

	res = e.do("POST", "/api/auth/login", "", map[string]string{"email": "ali@example.com", "password": "wrong-pass"})
	e.expect(res, http.StatusUnauthorized, "Invalid email or password")

	res = e.do("POST", "/api/auth/login", "", map[string]string{"email": "ALI@example.com", "password": "secret123"})
	e.expect(res, http.StatusOK, "")
	if res.str("token") == "" || res.str("refreshToken") == "" {
		t.Fatalf("expected a token pair, got %v", res.body)
	}
	if res.obj("user")["role"] != "user" {
		t.Fatalf("expected role user, got %v", res.obj("user"))
	}

	me := e.do("GET", "/api/auth/me", res.str("token"), nil)
	e.expect(me, http.StatusOK, "")
	if me.obj("user")["email"] != "ali@example.com" {
		t.Fatalf("unexpected me %v", me.body)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)

	res := e.do("POST", "/api/auth/register", "", map[string]string{
		"fullName": "A",
		"email":    "nope",
		"password": "123",
	})
	e.expect(res, http.StatusBadRequest, "Validation failed")

	fields := map[string]string{}
	for _, d := range res.list("details") {
		detail := d.(map[string]interface{})
		fields[detail["field"].(string)] = detail["message"].(string)
	}
	for _, f := range []string{"fullName", "email", "password", "cnicFront", "cnicBack"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing detail for %s in %v", f, fields)
		}
	}
	if fields["email"] != "Please provide a valid email address" {
		t.Errorf("unexpected email message %q", fields["email"])
	}

	res = e.do("POST", "/api/auth/register", "", "not an object")
	e.expect(res, http.StatusBadRequest, "Invalid request body")
}

func TestPasswordResetFlow(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("Sara", "sara@example.com", "oldpass1", models.RoleUser, true)

	res := e.do("POST", "/api/auth/forgot-password", "", map[string]string{"email": "missing@example.com"})
	e.expect(res, http.StatusOK, "")
	if e.mailer.count() != 0 {
		t.Fatal("no mail should be sent for an unknown email")
	}

	res = e.do("POST", "/api/auth/forgot-password", "", map[string]string{"email": "sara@example.com"})
	e.expect(res, http.StatusOK, "")
	mail := e.mailer.last()
	if !strings.Contains(mail.Text, "/reset-password?token=") {
		t.Fatalf("reset mail not sent: %+v", mail)
	}
	resetToken := linkToken(t, mail.Text)

	res = e.do("POST", "/api/auth/reset-password", "", map[string]string{"token": "bad", "password": "newpass1"})
	e.expect(res, http.StatusBadRequest, "Invalid or expired reset token")

	res = e.do("POST", "/api/auth/reset-password", "", map[string]string{"token": resetToken, "password": "newpass1"})
	e.expect(res, http.StatusOK, "")

	res = e.do("POST", "/api/auth/login", "", map[string]string{"email": "sara@example.com", "password": "oldpass1"})
	e.expect(res, http.StatusUnauthorized, "Invalid email or password")
	e.login("sara@example.com", "newpass1")
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.userToken("Omar", "omar@example.com")

	res := e.do("POST", "/api/auth/change-password", token, map[string]string{"oldPassword": "wrong", "newPassword": "another1"})
	e.expect(res, http.StatusUnauthorized, "Current password is incorrect")

	res = e.do("POST", "/api/auth/change-password", token, map[string]string{"oldPassword": "secret123", "newPassword": "secret123"})
	e.expect(res, http.StatusBadRequest, "New password must be different from current password")

	res = e.do("POST", "/api/auth/change-password", token, map[string]string{"oldPassword": "secret123", "newPassword": "another1"})
	e.expect(res, http.StatusOK, "")
	e.login("omar@example.com", "another1")
}

func TestChangePasswordValidation(t *testing.T) {
	e := newTestEnv(t)
	token, _ := e.userToken("Omar", "omar@example.com")

	res := e.do("POST", "/api/auth/change-password", token, map[string]string{"newPassword": "abc"})
	e.expect(res, http.StatusBadRequest, "Validation failed")
	fields := map[string]string{}
	for _, d := range res.list("details") {
		detail := d.(map[string]interface{})
		fields[detail["field"].(string)] = detail["message"].(string)
	}
	if fields["oldPassword"] != "Old password is required" {
		t.Errorf("unexpected oldPassword message %q", fields["oldPassword"])
	}
	if fields["newPassword"] != "New password must be at least 6 characters" {
		t.Errorf("unexpected newPassword message %q", fields["newPassword"])
	}
}

func TestRefreshAndLogout(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("Zara", "zara@example.com", "secret123", models.RoleUser, true)

	res := e.do("POST", "/api/auth/login", "", map[string]string{"email": "zara@example.com", "password": "secret123"})
	e.expect(res, http.StatusOK, "")
	refresh := res.str("refreshToken")

	res = e.do("POST", "/api/auth/refresh", "", map[string]string{"refreshToken": refresh})
	e.expect(res, http.StatusOK, "")
	rotated := res.str("refreshToken")
	if rotated == "" || rotated == refresh {
		t.Fatalf("refresh token was not rotated: %v", res.body)
	}
	e.expect(e.do("GET", "/api/auth/me", res.str("token"), nil), http.StatusOK, "")

	res = e.do("POST", "/api/auth/refresh", "", map[string]string{"refreshToken": refresh})
	e.expect(res, http.StatusUnauthorized, "Invalid or expired refresh token")

	res = e.do("POST", "/api/auth/logout", "", map[string]string{"refreshToken": rotated})
	e.expect(res, http.StatusOK, "")
	res = e.do("POST", "/api/auth/refresh", "", map[string]string{"refreshToken": rotated})
	e.expect(res, http.StatusUnauthorized, "Invalid or expired refresh token")
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestEnv(t)
	userToken, _ := e.userToken("Ali", "ali@example.com")

	res := e.do("GET", "/api/auth/me", "", nil)
	e.expect(res, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")

	res = e.do("GET", "/api/auth/me", "not.a.token", nil)
	e.expect(res, http.StatusUnauthorized, "Invalid or expired token. Please login again.")

	res = e.do("GET", "/api/admin/dashboard", userToken, nil)
	e.expect(res, http.StatusForbidden, "Access denied. Admin privileges required.")

	// The gate reads the stored user, so the token issued above is now refused.
	if err := e.db.Model(&models.User{}).Where("email = ?", "ali@example.com").
		Update("is_email_verified", false).Error; err != nil {
		t.Fatal(err)
	}
	res = e.do("GET", "/api/bookings", userToken, nil)
	e.expect(res, http.StatusForbidden, "Please verify your email address before accessing this resource.")

	if err := e.db.Where("email = ?", "ali@example.com").Delete(&models.User{}).Error; err != nil {
		t.Fatal(err)
	}
	res = e.do("GET", "/api/auth/me", userToken, nil)
	e.expect(res, http.StatusUnauthorized, "User not found. Please login again.")
}
