package routes

import (
	"hostel-server/models"
	"hostel-server/services"
	"hostel-server/storage"
	"hostel-server/utils"

	"github.com/kataras/iris/v12"
)

type roleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=user admin"`
}

type adminHandlers struct {
	admin *services.AdminService
	auth  *services.AuthService
}

func (h *adminHandlers) mount(p iris.Party, admin []iris.Handler) {
	login := &authHandlers{auth: h.auth}
	p.Post("/login", func(ctx iris.Context) { login.loginWith(ctx, true) })
	p.Get("/dashboard", withHandler(admin, h.dashboard)...)
	p.Get("/users", withHandler(admin, h.users)...)
	p.Patch("/users/{id:uint}/role", withHandler(admin, h.setRole)...)
}

func (h *adminHandlers) dashboard(ctx iris.Context) {
	stats, err := h.admin.Dashboard(ctx.Request().Context())
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "stats": stats})
}

func (h *adminHandlers) users(ctx iris.Context) {
	page, limit := utils.ReadPage(ctx, 20, 100)
	users, total, err := h.admin.Users(ctx.Request().Context(), storage.UserFilter{
		Search: ctx.URLParamTrim("search"),
		Role:   models.Role(ctx.URLParamTrim("role")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"page":    page,
		"pages":   utils.Pages(total, limit),
		"limit":   limit,
	})
}

func (h *adminHandlers) setRole(ctx iris.Context) {
	var req roleRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	user, err := h.admin.SetRole(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().GetUintDefault("id", 0), req.Role)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"message": "User role updated successfully",
		"user":    user.Summary(true),
	})
}
