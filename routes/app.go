package routes

import (
	"hostel-server/config"
	"hostel-server/services"
	"hostel-server/storage"
	"hostel-server/utils"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/logger"
	"github.com/kataras/iris/v12/middleware/recover"
	"gorm.io/gorm"
)

// Dependencies are built once by main and shared by every handler.
type Dependencies struct {
	Config   *config.Config
	Logger   *golog.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Mailer   services.Mailer
	Uploader services.Uploader
}

// maxBodySize fits base64 CNIC and room images.
const maxBodySize = 10 << 20

func NewApp(deps Dependencies) *iris.Application {
	app := iris.New()
	app.Validator = utils.NewValidator()

	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = app.Logger()
	}
	if cfg.LogLevel != "" {
		app.Logger().SetLevel(cfg.LogLevel)
	}
	mailer := deps.Mailer
	if mailer == nil {
		mailer = services.NewLogMailer(log)
	}

	users := storage.NewUserStore(deps.DB)
	rooms := storage.NewRoomStore(deps.DB)
	bookings := storage.NewBookingStore(deps.DB)
	facilities := storage.NewFacilityStore(deps.DB)

	tokens := services.NewTokenService(services.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		AccessTTL:     cfg.JWTExpiresIn,
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshTTL:    cfg.RefreshTokenExpireIn,
	}, deps.Redis)
	notifier := services.NewNotifier(mailer, cfg.FrontendURL, cfg.Mail.ContactEmail)

	app.UseRouter(utils.CORS(cfg.FrontendURL, "http://localhost:3000", "http://localhost:8080"))
	app.UseRouter(recover.New())
	app.UseRouter(logger.New())
	app.UseRouter(iris.LimitRequestBodySize(maxBodySize))

	app.OnErrorCode(iris.StatusNotFound, func(ctx iris.Context) {
		utils.CreateNotFound(ctx, "Route not found")
	})

	app.Get("/", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"success": true,
			"message": "Hostel management API",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"success":   true,
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authenticated := utils.Authenticate(tokens, users)
	verified := []iris.Handler{authenticated, utils.RequireVerified}
	admin := []iris.Handler{authenticated, utils.RequireVerified, utils.AdminOnly}

	api := app.Party("/api")

	auth := &authHandlers{auth: services.NewAuthService(users, tokens, notifier, deps.Uploader, log)}
	auth.mount(api.Party("/auth"), authenticated)

	roomH := &roomHandlers{rooms: services.NewRoomService(rooms, deps.Uploader)}
	roomH.mount(api.Party("/rooms"), admin)

	bookingSvc := services.NewBookingService(bookings, rooms, users, notifier, log)
	bookingH := &bookingHandlers{bookings: bookingSvc}
	bookingH.mount(api.Party("/bookings", verified...))

	facilityH := &facilityHandlers{facilities: services.NewFacilityService(facilities)}
	facilityH.mount(api.Party("/facilities"), admin)

	residentH := &residentHandlers{bookings: bookingSvc}
	residentH.mount(api.Party("/residents", admin...))

	adminH := &adminHandlers{admin: services.NewAdminService(users, rooms, bookings), auth: auth.auth}
	adminH.mount(api.Party("/admin"), admin)

	contactH := &contactHandlers{notifier: notifier, logger: log}
	api.Post("/contact", contactH.submit)

	return app
}

func withHandler(chain []iris.Handler, h iris.Handler) []iris.Handler {
	out := make([]iris.Handler, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}
