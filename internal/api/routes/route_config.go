package routes

import (
	"EatBefore/internal/api/handlers"
	"EatBefore/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	GroceryHandler  handlers.GroceryHandler
	DraftHandler    handlers.DraftHandler
	FavoriteHandler handlers.FavoriteHandler
	Middleware      middleware.Middleware
	Sessions        middleware.SessionValidator
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Groceries()
	c.Drafts()
	c.Favorites()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/session/start", c.UserHandler.StartRoute)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/signup", c.UserHandler.Signup)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/logout", c.Middleware.AuthMiddleware(c.Sessions), c.UserHandler.Logout)
		user.Get("/me", c.Middleware.AuthMiddleware(c.Sessions), c.UserHandler.Me)
	}
}

func (c *Config) Groceries() {
	groceries := c.App.Group("/api/v1/groceries", c.Middleware.AuthMiddleware(c.Sessions))
	groceries.Get("/stats", c.GroceryHandler.GetDashboardStats)
	groceries.Get("/tiers", c.GroceryHandler.GetTiers)

	groceries.Post("", c.GroceryHandler.AddGroceryItem)
	groceries.Get("", c.GroceryHandler.GetGroceryItems)
	groceries.Get("/:id", c.GroceryHandler.GetGroceryItemDetails)
}

func (c *Config) Drafts() {
	drafts := c.App.Group("/api/v1/drafts", c.Middleware.AuthMiddleware(c.Sessions))
	drafts.Post("", c.DraftHandler.CreateDraft)
	drafts.Get("/:id", c.DraftHandler.GetDraft)
	drafts.Patch("/:id", c.DraftHandler.UpdateDraft)
	drafts.Delete("/:id", c.DraftHandler.DiscardDraft)

	// add-item flow
	drafts.Post("/:id/recognize", c.DraftHandler.RecognizeDraft)
	drafts.Post("/:id/save", c.DraftHandler.SaveDraft)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/v1/favorites", c.Middleware.AuthMiddleware(c.Sessions))
	favorites.Get("", c.FavoriteHandler.GetFavorites)
	favorites.Post("", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:id", c.FavoriteHandler.RemoveFavorite)
}
