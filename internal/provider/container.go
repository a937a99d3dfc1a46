package provider

import (
	"github.com/libris-next/internal/cache"
	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/logger"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/queue"
	"github.com/libris-next/internal/repository"
	"github.com/libris-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	BookRepo      repository.BookRepository
	AuthorRepo    repository.AuthorRepository
	GenreRepo     repository.GenreRepository
	PurchaseRepo  repository.PurchaseRepository
	LikedBookRepo repository.LikedBookRepository

	// Services
	UserAuthService *service.UserAuthService
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	PurchaseService *service.PurchaseService
	LikeService     *service.LikeService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BookRepo = repository.NewBookRepository(db)
	c.AuthorRepo = repository.NewAuthorRepository(db)
	c.GenreRepo = repository.NewGenreRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.LikedBookRepo = repository.NewLikedBookRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.BookRepo, c.LikedBookRepo)
	c.CartService = service.NewCartService(c.Config, c.PurchaseRepo, c.BookRepo, c.QueueClient)
	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo, c.BookRepo)
	c.LikeService = service.NewLikeService(c.LikedBookRepo, c.BookRepo)
}
