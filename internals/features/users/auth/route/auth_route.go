package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authctl "dugsiku_backend/internals/features/users/auth/controller"
	"dugsiku_backend/internals/middlewares"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

// AuthRoutes registers the public auth endpoints plus the token-protected
// session endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &authctl.AuthController{DB: db}

	grp := app.Group("/api/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grp.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	grp.Post("/refresh", ctl.Refresh)

	protected := app.Group("/api/auth", authmw.AuthMiddleware(db))
	protected.Post("/logout", ctl.Logout)
	protected.Get("/me", ctl.Me)
}
