package routes

import (
	"hostel-server/models"
	"hostel-server/services"
	"hostel-server/utils"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
)

type roomHandlers struct {
	rooms *services.RoomService
}

func (h *roomHandlers) mount(p iris.Party, admin []iris.Handler) {
	p.Get("/", h.list)
	p.Get("/types", h.types)
	p.Get("/types/{slug:string}", h.typeBySlug)
	p.Get("/{id:uint}", h.get)
	p.Post("/", withHandler(admin, h.create)...)
	p.Put("/{id:uint}", withHandler(admin, h.update)...)
	p.Delete("/{id:uint}", withHandler(admin, h.delete)...)
}

// queryDate parses an optional date parameter. It writes a validation
// error and returns false when the value is present but malformed.
func queryDate(ctx iris.Context, name string) (*time.Time, bool) {
	raw := ctx.URLParamTrim(name)
	if raw == "" {
		return nil, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		utils.HandleError(ctx, utils.ValidationError(utils.FieldError{
			Field:   name,
			Message: "Invalid date",
		}))
		return nil, false
	}
	return &t, true
}

func (h *roomHandlers) list(ctx iris.Context) {
	page, limit := utils.ReadPage(ctx, 10, 100)
	q := services.RoomQuery{
		RoomType: models.RoomType(ctx.URLParamTrim("roomType")),
		Status:   models.RoomStatus(ctx.URLParamTrim("status")),
		Search:   ctx.URLParamTrim("search"),
		Page:     page,
		Limit:    limit,
	}
	switch ctx.URLParam("isActive") {
	case "true":
		active := true
		q.IsActive = &active
	case "false":
		inactive := false
		q.IsActive = &inactive
	}
	if raw := ctx.URLParamTrim("floor"); raw != "" {
		if floor, err := strconv.Atoi(raw); err == nil {
			q.Floor = &floor
		}
	}

	checkIn, ok := queryDate(ctx, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := queryDate(ctx, "checkOut")
	if !ok {
		return
	}
	q.CheckIn, q.CheckOut = checkIn, checkOut

	rooms, total, err := h.rooms.List(ctx.Request().Context(), q)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success": true,
		"count":   len(rooms),
		"total":   total,
		"page":    page,
		"pages":   utils.Pages(total, limit),
		"limit":   limit,
		"rooms":   rooms,
	})
}

func (h *roomHandlers) get(ctx iris.Context) {
	room, err := h.rooms.Get(ctx.Request().Context(), ctx.Params().GetUintDefault("id", 0))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "room": room})
}

func (h *roomHandlers) create(ctx iris.Context) {
	var in services.RoomInput
	if !utils.ReadBody(ctx, &in) {
		return
	}
	room, err := h.rooms.Create(ctx.Request().Context(), in)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "room": room})
}

func (h *roomHandlers) update(ctx iris.Context) {
	var in services.RoomInput
	if !utils.ReadBody(ctx, &in) {
		return
	}
	room, err := h.rooms.Update(ctx.Request().Context(), ctx.Params().GetUintDefault("id", 0), in)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "room": room})
}

func (h *roomHandlers) delete(ctx iris.Context) {
	if err := h.rooms.Delete(ctx.Request().Context(), ctx.Params().GetUintDefault("id", 0)); err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "message": "Room deleted successfully"})
}

func (h *roomHandlers) types(ctx iris.Context) {
	ctx.JSON(iris.Map{"success": true, "roomTypes": services.RoomTypes()})
}

func (h *roomHandlers) typeBySlug(ctx iris.Context) {
	t, err := services.RoomTypeBySlug(ctx.Params().Get("slug"))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "roomType": t})
}
