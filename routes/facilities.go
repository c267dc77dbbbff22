package routes

import (
	"hostel-server/services"
	"hostel-server/utils"

	"github.com/kataras/iris/v12"
)

type facilityAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

type facilityHandlers struct {
	facilities *services.FacilityService
}

func (h *facilityHandlers) mount(p iris.Party, admin []iris.Handler) {
	p.Get("/", h.list)
	p.Get("/{id:string}", h.get)
	p.Patch("/{id:string}", withHandler(admin, h.update)...)
}

func (h *facilityHandlers) list(ctx iris.Context) {
	facilities, err := h.facilities.List(ctx.Request().Context(), ctx.URLParam("availableOnly") == "true")
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "facilities": facilities})
}

func (h *facilityHandlers) get(ctx iris.Context) {
	facility, err := h.facilities.Get(ctx.Request().Context(), ctx.Params().Get("id"))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "facility": facility})
}

func (h *facilityHandlers) update(ctx iris.Context) {
	var req facilityAvailabilityRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	facility, err := h.facilities.SetAvailability(ctx.Request().Context(), ctx.Params().Get("id"), *req.IsAvailable)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success":  true,
		"message":  "Facility updated successfully",
		"facility": facility,
	})
}
