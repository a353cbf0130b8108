package httpserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/Maron09/Product-Store/internal/token"
	"github.com/Maron09/Product-Store/internal/usecase"
)

type RouterDeps struct {
	Auth     usecase.AuthUsecase
	Profiles usecase.ProfileUsecase
	Catalog  usecase.CategoryUsecase
	Products usecase.ProductUsecase
	Cart     usecase.CartUsecase
	Wishlist usecase.WishlistUsecase
	Users    repository.UserRepository
	Tokens   *token.Manager
	Metrics  *metrics.Manager
	Log      logger.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	profileHandler := NewProfileHandler(deps.Profiles, deps.Log)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Products, deps.Log)
	cartHandler := NewCartHandler(deps.Cart, deps.Log)
	wishlistHandler := NewWishlistHandler(deps.Wishlist, deps.Log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.Log, deps.Metrics))

	r.Route("/api", func(r chi.Router) {
		// Public auth surface.
		r.Post("/auth/signup/customer", authHandler.SignupCustomer)
		r.Post("/auth/signup/vendor", authHandler.SignupVendor)
		r.Post("/auth/verify_account", authHandler.VerifyAccount)
		r.Post("/auth/request_otp", authHandler.RequestOTP)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/forgot_password", authHandler.ForgotPassword)
		r.Post("/auth/reset_password", authHandler.ResetPassword)

		// Public catalog reads.
		r.Get("/category", catalogHandler.ListCategories)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(deps.Tokens))

			r.Post("/auth/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(deps.Users))
				r.Post("/category", catalogHandler.CreateCategory)
				r.Patch("/category/{id}", catalogHandler.UpdateCategory)
				r.Delete("/category/{id}", catalogHandler.DeleteCategory)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(entity.RoleVendor))
				r.Get("/vendor/profile", profileHandler.Get)
				r.Patch("/vendor/profile", profileHandler.Update)
				r.Post("/vendor/product", catalogHandler.CreateProduct)
				r.Patch("/vendor/product/{id}", catalogHandler.UpdateProduct)
				r.Delete("/vendor/product/{id}", catalogHandler.DeleteProduct)
				r.Put("/vendor/product/upload/{id}", catalogHandler.UploadImages)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(entity.RoleCustomer))
				r.Get("/customer/profile", profileHandler.Get)
				r.Patch("/customer/profile", profileHandler.Update)

				r.Get("/cart", cartHandler.Get)
				r.Post("/cart", cartHandler.Add)
				r.Get("/cart/{id}", cartHandler.GetItem)
				r.Patch("/cart/{id}", cartHandler.UpdateQuantity)
				r.Delete("/cart/{id}", cartHandler.Remove)

				r.Get("/customer/wishlist", wishlistHandler.List)
				r.Post("/customer/wishlist", wishlistHandler.Add)
				r.Delete("/customer/wishlist/{product_id}", wishlistHandler.Remove)
			})
		})
	})

	return r
}
