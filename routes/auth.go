package routes

import (
	"hostel-server/services"
	"hostel-server/utils"

	"github.com/kataras/iris/v12"
)

type registerRequest struct {
	FullName  string `json:"fullName" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	CNICFront string `json:"cnicFront" validate:"required"`
	CNICBack  string `json:"cnicBack" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=100"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authHandlers struct {
	auth *services.AuthService
}

func (h *authHandlers) mount(p iris.Party, authenticated iris.Handler) {
	p.Post("/register", h.signUp)
	p.Post("/verify-email", h.verifyEmail)
	p.Post("/login", h.login)
	p.Post("/forgot-password", h.forgotPassword)
	p.Post("/reset-password", h.resetPassword)
	p.Post("/refresh", h.refresh)
	p.Post("/logout", h.logout)
	p.Get("/me", authenticated, h.me)
	p.Post("/change-password", authenticated, h.changePassword)
}

func (h *authHandlers) signUp(ctx iris.Context) {
	var req registerRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}

	user, err := h.auth.Register(ctx.Request().Context(), services.RegisterInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		CNICFront: req.CNICFront,
		CNICBack:  req.CNICBack,
	})
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user.Summary(false),
	})
}

func (h *authHandlers) verifyEmail(ctx iris.Context) {
	var req tokenRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	user, err := h.auth.VerifyEmail(ctx.Request().Context(), req.Token)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Email verified successfully. You can now login.",
		"user":    user.Summary(false),
	})
}

// loginWith serves both the user and the admin login endpoints.
func (h *authHandlers) loginWith(ctx iris.Context, adminOnly bool) {
	var req loginRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	user, pair, err := h.auth.Login(ctx.Request().Context(), req.Email, req.Password, adminOnly)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}

	body := iris.Map{
		"success": true,
		"message": "Login successful",
		"token":   pair.AccessToken,
		"user":    user.Summary(true),
	}
	if pair.RefreshToken != "" {
		body["refreshToken"] = pair.RefreshToken
	}
	ctx.JSON(body)
}

func (h *authHandlers) login(ctx iris.Context) {
	h.loginWith(ctx, false)
}

func (h *authHandlers) forgotPassword(ctx iris.Context) {
	var req forgotPasswordRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	if err := h.auth.ForgotPassword(ctx.Request().Context(), req.Email); err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "If an account with that email exists, a password reset link has been sent.",
	})
}

func (h *authHandlers) resetPassword(ctx iris.Context) {
	var req resetPasswordRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	if err := h.auth.ResetPassword(ctx.Request().Context(), req.Token, req.Password); err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Password reset successful. You can now login with your new password.",
	})
}

func (h *authHandlers) me(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"success": true,
		"user":    utils.CurrentUser(ctx),
	})
}

func (h *authHandlers) changePassword(ctx iris.Context) {
	var req changePasswordRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	err := h.auth.ChangePassword(ctx.Request().Context(), utils.CurrentUser(ctx), req.OldPassword, req.NewPassword)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *authHandlers) refresh(ctx iris.Context) {
	var req refreshRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	user, pair, err := h.auth.Refresh(ctx.Request().Context(), req.RefreshToken)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success":      true,
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         user.Summary(true),
	})
}

func (h *authHandlers) logout(ctx iris.Context) {
	var req logoutRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	if err := h.auth.Logout(ctx.Request().Context(), req.RefreshToken); err != nil {
		ctx.Application().Logger().Warnf("revoking refresh token: %v", err)
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
