package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakzazasd/Clothes-Inventory/api/controllers"
	"github.com/oakzazasd/Clothes-Inventory/api/middleware"
	"github.com/oakzazasd/Clothes-Inventory/internal/auditlog"
	cartsvc "github.com/oakzazasd/Clothes-Inventory/internal/cart"
	checkoutsvc "github.com/oakzazasd/Clothes-Inventory/internal/checkout"
	"github.com/oakzazasd/Clothes-Inventory/internal/items"
	"github.com/oakzazasd/Clothes-Inventory/internal/photos"
	"github.com/oakzazasd/Clothes-Inventory/internal/staffauth"
	"github.com/oakzazasd/Clothes-Inventory/pkg/auth/session"
	"github.com/oakzazasd/Clothes-Inventory/pkg/config"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
	"github.com/oakzazasd/Clothes-Inventory/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	AuthService staffauth.Service
	Items       items.Service
	Cart        cartsvc.Service
	Checkout    checkoutsvc.Service
	Logs        auditlog.Service
	Photos      *photos.Store
	Metrics     http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Get("/photos/{name}", controllers.ServePhoto(deps.Photos, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(cfg.AuthRateLimit, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Post("/logout", controllers.Logout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		maxUpload := cfg.Photos.MaxUploadBytes()
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(deps.Items, cfg.Listing, logg))
			r.Post("/", controllers.CreateItem(deps.Items, deps.Photos, maxUpload, logg))
			r.Get("/{itemID}", controllers.GetItem(deps.Items, logg))
			r.Put("/{itemID}", controllers.UpdateItem(deps.Items, deps.Photos, maxUpload, logg))
			r.Post("/{itemID}/duplicate", controllers.DuplicateItem(deps.Items, logg))
			r.Delete("/{itemID}", controllers.DeleteItem(deps.Items, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Put("/", controllers.SetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.ConfirmCheckout(deps.Checkout, logg))

		r.Get("/logs", controllers.ListLogs(deps.Logs, logg))
	})

	return r
}
