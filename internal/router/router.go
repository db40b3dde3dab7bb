package router

import (
	"time"

	"github.com/dinepoll/server/internal/config"
	"github.com/dinepoll/server/internal/handlers"
	"github.com/dinepoll/server/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Friend     *handlers.FriendHandler
	Restaurant *handlers.RestaurantHandler
	Poll       *handlers.PollHandler
}

// New builds the gin engine with the full route table. Declarative only; all
// decisions live in middleware and handlers.
func New(cfg *config.Config, h Handlers, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())

	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)
	}
	r.Use(limiter.Middleware())

	r.GET("/version", handlers.Version)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/signin", h.Auth.Signin)
		auth.GET("/account", h.Auth.Account)
	}

	// user budget is keyed on the identity, so its stage runs after Authenticate
	authenticated := r.Group("/", middleware.Authenticate(cfg.JWTSecret), limiter.UserMiddleware())

	friends := authenticated.Group("/friends")
	{
		friends.GET("", h.Friend.List)
		friends.GET("/requests", h.Friend.Requests)
		friends.POST("", h.Friend.Create)
		friends.PUT("", h.Friend.Update)
		friends.DELETE("", h.Friend.Delete)
	}

	restaurants := authenticated.Group("/restaurants")
	{
		restaurants.GET("/list", h.Restaurant.Discover)
		restaurants.POST("/swipe", h.Restaurant.Swipe)
		restaurants.GET("/like", h.Restaurant.Liked)

		restaurants.GET("/favorite", h.Restaurant.ListFavorites)
		restaurants.POST("/favorite", h.Restaurant.AddFavorite)
		restaurants.DELETE("/favorite", h.Restaurant.RemoveFavorite)

		restaurants.GET("/:id", h.Restaurant.ByID)

		managed := restaurants.Group("", middleware.RequireManager())
		{
			managed.GET("", h.Restaurant.ByOwner)
			managed.POST("", h.Restaurant.Create)
			managed.PUT("/:id", h.Restaurant.Update)
			managed.DELETE("/:id", h.Restaurant.Delete)
		}
	}

	polls := authenticated.Group("/polls")
	{
		polls.GET("", h.Poll.List)
		polls.POST("", h.Poll.Create)
		polls.PUT("", h.Poll.Update)
		polls.DELETE("", h.Poll.Delete)
		polls.POST("/participants", h.Poll.AddParticipant)
		polls.DELETE("/participants", h.Poll.RemoveParticipant)
		polls.POST("/vote", h.Poll.Vote)
	}

	return r
}
