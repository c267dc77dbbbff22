package routes

import (
	"hostel-server/services"
	"hostel-server/utils"

	"github.com/kataras/iris/v12"
)

type residentHandlers struct {
	bookings *services.BookingService
}

func (h *residentHandlers) mount(p iris.Party) {
	p.Get("/", h.list)
	p.Get("/{id:uint}", h.get)
	p.Delete("/{id:uint}", h.checkOut)
}

func (h *residentHandlers) list(ctx iris.Context) {
	page, limit := utils.ReadPage(ctx, 20, 100)
	residents, total, err := h.bookings.Residents(ctx.Request().Context(), ctx.URLParamTrim("search"), page, limit)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success":   true,
		"residents": residents,
		"total":     total,
		"page":      page,
		"pages":     utils.Pages(total, limit),
		"limit":     limit,
	})
}

func (h *residentHandlers) get(ctx iris.Context) {
	resident, err := h.bookings.Resident(ctx.Request().Context(), ctx.Params().GetUintDefault("id", 0))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "resident": resident})
}

func (h *residentHandlers) checkOut(ctx iris.Context) {
	resident, err := h.bookings.CheckOut(ctx.Request().Context(), ctx.Params().GetUintDefault("id", 0))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success":  true,
		"message":  "Resident checked out successfully",
		"resident": resident,
	})
}
