package router

import (
	"cinemaverse/config"
	"cinemaverse/constants"
	"cinemaverse/handler"
	"cinemaverse/helper"
	"cinemaverse/middleware"
	"cinemaverse/model"
	"cinemaverse/validate"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the fiber app with the global middlewares and every route.
func New(h *handler.Handler, tokens *helper.TokenIssuer, settings config.Settings) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cinemaverse",
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(settings.IsDev()),
	})
	app.Use(requestid.New())
	app.Use(middleware.AccessLog())
	app.Use(recover.New(recover.Config{EnableStackTrace: settings.IsDev()}))
	origins := settings.CORSOrigins
	if origins == "" {
		origins = settings.FrontendURL
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, " + constants.WEBHOOK_SECRET_HEADER,
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	SetupRoutes(app, h, tokens, settings)
	return app
}

func SetupRoutes(app *fiber.App, h *handler.Handler, tokens *helper.TokenIssuer, settings config.Settings) {
	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	protected := middleware.Protected(tokens)

	auth := api.Group("/auth", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}))
	auth.Post("/register", validate.Body[model.RegisterInput](), h.Register)
	auth.Post("/login", validate.Body[model.LoginInput](), h.Login)
	auth.Post("/refresh", h.RefreshToken)
	auth.Post("/logout", h.Logout)
	auth.Post("/forgot-password", validate.Body[model.ForgotPasswordInput](), h.ForgotPassword)
	auth.Post("/reset-password", validate.Body[model.ResetPasswordInput](), h.ResetPassword)
	auth.Get("/me", protected, h.Me)
	auth.Put("/me", protected, validate.Body[model.UpdateProfileInput](), h.UpdateProfile)
	auth.Post("/change-password", protected, validate.Body[model.ChangePasswordInput](), h.ChangePassword)

	movies := api.Group("/movies")
	movies.Get("/", validate.Query[model.FilterMovieInput](), h.GetMovies)
	movies.Get("/now-showing", validate.Query[model.Pagination](), h.GetNowShowing)
	movies.Get("/coming-soon", validate.Query[model.Pagination](), h.GetComingSoon)
	movies.Get("/slug/:slug", h.GetMovieBySlug)
	movies.Get("/:id", validate.ParamID("id"), h.GetMovie)
	movies.Get("/:id/showtimes", validate.ParamID("id"), h.GetMovieShowtimes)
	movies.Get("/:id/reviews", validate.ParamID("id"), validate.Query[model.Pagination](), h.GetMovieReviews)
	movies.Post("/:id/reviews", protected, validate.ParamID("id"), validate.Body[model.ReviewInput](), h.CreateReview)

	reviews := api.Group("/reviews", protected)
	reviews.Put("/:id", validate.ParamID("id"), validate.Body[model.ReviewInput](), h.EditReview)
	reviews.Delete("/:id", validate.ParamID("id"), h.DeleteReview)

	api.Get("/genres", h.GetGenres)

	branches := api.Group("/branches")
	branches.Get("/", validate.Query[model.FilterBranch](), h.GetBranches)
	branches.Get("/:id", validate.ParamID("id"), h.GetBranch)
	branches.Get("/:id/halls", validate.ParamID("id"), h.GetBranchHalls)

	showtimes := api.Group("/showtimes")
	showtimes.Get("/", validate.Query[model.FilterShowtime](), h.GetShowtimes)
	showtimes.Get("/:id", validate.ParamID("id"), h.GetShowtime)
	showtimes.Get("/:id/seats", validate.ParamID("id"), h.GetShowtimeSeats)

	api.Use("/ws", h.Hub.Upgrade)
	api.Get("/ws/showtimes/:id/seats", h.Hub.Handler())

	bookings := api.Group("/bookings", protected)
	bookings.Post("/", validate.Body[model.CreateBookingInput](), h.CreateBooking)
	bookings.Get("/", validate.Query[model.FilterBooking](), h.GetMyBookings)
	bookings.Get("/:id", validate.ParamID("id"), h.GetBooking)
	bookings.Post("/:id/cancel", validate.ParamID("id"), h.CancelBooking)

	payments := api.Group("/payments")
	payments.Post("/webhook", middleware.WebhookSecret(settings.PaymentWebhookSecret), validate.Body[model.PaymentWebhookInput](), h.PaymentWebhook)
	payments.Post("/intents", protected, validate.Body[model.CreatePaymentIntentInput](), h.CreatePaymentIntent)
	payments.Post("/:id/confirm", protected, validate.ParamID("id"), h.ConfirmPayment)
	payments.Get("/booking/:bookingId", protected, validate.ParamID("bookingId"), h.GetBookingPayment)

	tickets := api.Group("/tickets", protected)
	tickets.Get("/", validate.Query[model.FilterTicket](), h.GetMyTickets)
	tickets.Get("/:id", validate.ParamID("id"), h.GetTicket)
	tickets.Get("/:id/qr", validate.ParamID("id"), h.GetTicketQR)

	setupAdminRoutes(api.Group("/admin", protected, middleware.AdminOnly()), h)
}

func setupAdminRoutes(admin fiber.Router, h *handler.Handler) {
	movies := admin.Group("/movies")
	movies.Post("/", validate.Body[model.CreateMovieInput](), h.CreateMovie)
	movies.Put("/:id", validate.ParamID("id"), validate.Body[model.EditMovieInput](), h.EditMovie)
	movies.Patch("/:id/status", validate.ParamID("id"), validate.Body[model.MovieStatusInput](), h.SetMovieStatus)
	movies.Delete("/:id", validate.ParamID("id"), h.DeleteMovie)
	movies.Post("/:id/cast", validate.ParamID("id"), validate.Body[model.CastMemberInput](), h.AddCastMember)
	movies.Delete("/:id/cast/:castId", validate.ParamID("id", "castId"), h.RemoveCastMember)
	movies.Post("/:id/images", validate.ParamID("id"), validate.Body[model.MovieImageInput](), h.AddMovieImage)
	movies.Post("/:id/images/upload", validate.ParamID("id"), h.UploadMovieImage)
	movies.Patch("/:id/images/:imageId/primary", validate.ParamID("id", "imageId"), h.SetPrimaryImage)
	movies.Delete("/:id/images/:imageId", validate.ParamID("id", "imageId"), h.RemoveMovieImage)

	genres := admin.Group("/genres")
	genres.Post("/", validate.Body[model.GenreInput](), h.CreateGenre)
	genres.Put("/:id", validate.ParamID("id"), validate.Body[model.GenreInput](), h.EditGenre)
	genres.Delete("/:id", validate.ParamID("id"), h.DeleteGenre)

	branches := admin.Group("/branches")
	branches.Get("/", validate.Query[model.FilterBranch](), h.GetAllBranches)
	branches.Post("/", validate.Body[model.CreateBranchInput](), h.CreateBranch)
	branches.Put("/:id", validate.ParamID("id"), validate.Body[model.EditBranchInput](), h.EditBranch)
	branches.Delete("/:id", validate.ParamID("id"), h.DeleteBranch)

	halls := admin.Group("/halls")
	halls.Post("/", validate.Body[model.CreateHallInput](), h.CreateHall)
	halls.Get("/:id", validate.ParamID("id"), h.GetHall)
	halls.Put("/:id", validate.ParamID("id"), validate.Body[model.EditHallInput](), h.EditHall)
	halls.Delete("/:id", validate.ParamID("id"), h.DeleteHall)
	halls.Get("/:id/seats", validate.ParamID("id"), h.GetHallSeats)
	halls.Patch("/:id/seats/:seatId", validate.ParamID("id", "seatId"), validate.Body[model.SeatActiveInput](), h.SetSeatActive)

	showtimes := admin.Group("/showtimes")
	showtimes.Post("/", validate.Body[model.CreateShowtimeInput](), h.CreateShowtime)
	showtimes.Put("/:id", validate.ParamID("id"), validate.Body[model.EditShowtimeInput](), h.EditShowtime)
	showtimes.Post("/:id/cancel", validate.ParamID("id"), h.CancelShowtime)
	showtimes.Delete("/:id", validate.ParamID("id"), h.DeleteShowtime)

	admin.Get("/bookings", validate.Query[model.FilterBooking](), h.GetBookings)

	users := admin.Group("/users")
	users.Get("/", validate.Query[model.FilterUser](), h.GetUsers)
	users.Get("/:id", validate.ParamID("id"), h.GetUser)
	users.Patch("/:id/role", validate.ParamID("id"), validate.Body[model.ChangeRoleInput](), h.ChangeRole)
	users.Patch("/:id/active", validate.ParamID("id"), validate.Body[model.ActiveUserInput](), h.ActiveUser)

	admin.Post("/tickets/check-in", validate.Body[model.CheckInInput](), h.CheckInTicket)
	admin.Get("/dashboard", validate.Query[model.DashboardFilter](), h.GetDashboard)
}
