package routes

import (
	"errors"
	"hostel-server/services"
	"hostel-server/utils"
	"strings"

	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactHandlers struct {
	notifier *services.Notifier
	logger   *golog.Logger
}

func (h *contactHandlers) submit(ctx iris.Context) {
	var req contactRequest
	if !utils.ReadBody(ctx, &req) {
		return
	}
	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)

	err := h.notifier.SendContactMessage(ctx.Request().Context(), name, email, strings.TrimSpace(req.Message))
	switch {
	case errors.Is(err, services.ErrContactDisabled):
		h.logger.Infof("contact form from %s <%s>: %s", name, email, req.Message)
	case err != nil:
		h.logger.Errorf("forwarding contact form from %s: %v", email, err)
		utils.CreateError(ctx, iris.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Thank you for contacting us. We will get back to you soon.",
	})
}
