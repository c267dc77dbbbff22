package routes

import (
	"hostel-server/models"
	"hostel-server/services"
	"hostel-server/utils"

	"github.com/kataras/iris/v12"
)

type createBookingRequest struct {
	Room         uint   `json:"room" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Notes        string `json:"notes" validate:"max=500"`
	UserID       uint   `json:"userId"`
}

type bookingHandlers struct {
	bookings *services.BookingService
}

func (h *bookingHandlers) mount(p iris.Party) {
	p.Post("/", h.create)
	p.Get("/", h.list)
	p.Get("/{id:uint}", h.get)
	p.Patch("/{id:uint}", h.update)
}

func (h *bookingHandlers) create(ctx iris.Context) {
	var req createBookingRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}

	var details []utils.FieldError
	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		details = append(details, utils.FieldError{Field: "checkInDate", Message: "Invalid date"})
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		details = append(details, utils.FieldError{Field: "checkOutDate", Message: "Invalid date"})
	}
	if len(details) > 0 {
		utils.HandleError(ctx, utils.ValidationError(details...))
		return
	}

	booking, err := h.bookings.Create(ctx.Request().Context(), utils.CurrentUser(ctx), services.CreateBookingInput{
		RoomID:     req.Room,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      req.Notes,
		OnBehalfOf: req.UserID,
	})
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

func (h *bookingHandlers) list(ctx iris.Context) {
	page, limit := utils.ReadPage(ctx, 20, 100)
	bookings, total, err := h.bookings.List(ctx.Request().Context(), utils.CurrentUser(ctx), services.BookingQuery{
		Status: models.BookingStatus(ctx.URLParamTrim("status")),
		RoomID: uint(ctx.URLParamUint64("roomId")),
		UserID: uint(ctx.URLParamUint64("userId")),
		Search: ctx.URLParamTrim("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{
		"success":  true,
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"pages":    utils.Pages(total, limit),
		"limit":    limit,
	})
}

func (h *bookingHandlers) get(ctx iris.Context) {
	booking, err := h.bookings.Get(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().GetUintDefault("id", 0))
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

func (h *bookingHandlers) update(ctx iris.Context) {
	var in services.UpdateBookingInput
	if !utils.ReadBody(ctx, &in) {
		return
	}
	booking, err := h.bookings.Update(ctx.Request().Context(), utils.CurrentUser(ctx), ctx.Params().GetUintDefault("id", 0), in)
	if err != nil {
		utils.HandleError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"success": true, "booking": booking})
}
