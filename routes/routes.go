package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"minimart/checkout"
	"minimart/config"
	"minimart/store"
)

var validate = validator.New()

// API bundles the dependencies the handlers need.
type API struct {
	Catalog *store.Catalog
	Users   *store.Users
	Engine  *checkout.Engine
	Hub     *Hub
	Cfg     config.Config
	Log     *zap.Logger
}

func SetupRoutes(app *fiber.App, a *API) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is running")
	})

	app.Get("/ws", a.Hub.Handler())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", a.register)
	auth.Post("/login", a.login)
	auth.Post("/refresh", a.refresh)
	auth.Post("/logout", a.logout)

	categories := api.Group("/categories", a.requireAuth)
	categories.Get("/", a.getAllCategories)
	categories.Get("/retired", a.getRetiredCategories)
	categories.Get("/:id", a.getCategory)
	categories.Post("/", a.createCategory)
	categories.Put("/:id", a.updateCategory)
	categories.Delete("/:id", a.deleteCategory)

	products := api.Group("/products", a.requireAuth)
	products.Get("/", a.getAllProducts)
	products.Get("/retired", a.getRetiredProducts)
	products.Get("/:id", a.getProduct)
	products.Post("/", a.createProduct)
	products.Put("/:id", a.updateProduct)
	products.Delete("/:id", a.deleteProduct)

	api.Post("/uploads", a.requireAuth, a.uploadImage)

	transactions := api.Group("/transactions", a.requireAuth)
	transactions.Post("/", a.createTransaction)
	transactions.Get("/:id", a.getTransaction)
}
