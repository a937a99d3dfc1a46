package router

import (
	"fmt"
	"strings"

	"github.com/libris-next/internal/cache"
	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/constants"
	publichandlers "github.com/libris-next/internal/http/handlers/public"
	"github.com/libris-next/internal/logger"
	"github.com/libris-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（携带 Token 时附带个性化状态，如收藏标记）
		catalog := apiV1.Group("")
		catalog.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey))
		{
			catalog.GET("/books", publicHandler.GetBooks)
			catalog.GET("/books/:id", publicHandler.GetBook)
			catalog.GET("/genres", publicHandler.GetGenres)
			catalog.GET("/authors", publicHandler.GetAuthors)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items/:book_id", publicHandler.AddCartItem)
			user.DELETE("/cart/items/:book_id", publicHandler.DeleteCartItem)
			user.PUT("/cart/items", publicHandler.UpdateCartItems)
			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/purchases", publicHandler.GetPurchases)
			user.GET("/purchases/:id", publicHandler.GetPurchase)
			user.POST("/books/:id/like", publicHandler.LikeBook)
			user.DELETE("/books/:id/like", publicHandler.UnlikeBook)
			user.GET("/likes", publicHandler.GetLikedBooks)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
