package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"trustboard-backend/internal/config"
	infraCache "trustboard-backend/internal/infrastructure/cache"
	"trustboard-backend/internal/infrastructure/database"
	"trustboard-backend/internal/infrastructure/queue"
	"trustboard-backend/internal/infrastructure/social"
	"trustboard-backend/internal/infrastructure/storage"
	"trustboard-backend/pkg/cache"

	"trustboard-backend/internal/domains/claim"
	claimHandler "trustboard-backend/internal/domains/claim/handler"
	claimRepo "trustboard-backend/internal/domains/claim/repository"
	claimService "trustboard-backend/internal/domains/claim/service"
	"trustboard-backend/internal/domains/influencer"
	influencerHandler "trustboard-backend/internal/domains/influencer/handler"
	influencerRepo "trustboard-backend/internal/domains/influencer/repository"
	influencerService "trustboard-backend/internal/domains/influencer/service"
	"trustboard-backend/internal/domains/report"
	reportHandler "trustboard-backend/internal/domains/report/handler"
	reportRepo "trustboard-backend/internal/domains/report/repository"
	reportService "trustboard-backend/internal/domains/report/service"
	socialDomain "trustboard-backend/internal/domains/social"
	socialHandler "trustboard-backend/internal/domains/social/handler"
	socialRepo "trustboard-backend/internal/domains/social/repository"
	socialService "trustboard-backend/internal/domains/social/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Queue   *queue.Client
	Storage *storage.MinIOStorage

	InfluencerRepo influencer.Repository
	ClaimRepo      claim.Repository
	ReportRepo     report.Repository
	SocialRepo     socialDomain.Repository

	InfluencerService influencer.Service
	ClaimService      claim.Service
	ReportService     report.Service
	OAuthService      socialDomain.OAuthService
	AnalyzerService   socialDomain.AnalyzerService

	InfluencerHandler *influencerHandler.InfluencerHandler
	ClaimHandler      *claimHandler.ClaimHandler
	ReportHandler     *reportHandler.ReportHandler
	SocialHandler     *socialHandler.SocialHandler
}

// NewContainer initializes the whole dependency graph. Order matters: a
// misordered init would hand a nil dependency to a constructor.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("database connected")

	// Redis failure is not fatal: the cache layer degrades to misses and
	// every read falls through to Postgres.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("redis connection failed (non-critical): %v", err)
	} else {
		log.Println("redis connected")
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("object storage ready")

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.InfluencerRepo = influencerRepo.NewPostgresRepository(pool)
	c.ClaimRepo = claimRepo.NewPostgresRepository(pool)
	c.ReportRepo = reportRepo.NewPostgresRepository(pool)
	c.SocialRepo = socialRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	fetcher := social.NewHTTPProfileFetcher(c.Config.Social.ProfileAPIBaseURL)

	c.InfluencerService = influencerService.NewInfluencerService(c.InfluencerRepo, c.Cache, fetcher)

	// The queue client doubles as the claim status notifier.
	c.ClaimService = claimService.NewClaimService(c.ClaimRepo, c.InfluencerRepo, c.Cache, c.Queue)

	c.ReportService = reportService.NewReportService(c.ReportRepo, c.InfluencerRepo, c.ClaimRepo, c.Queue, c.Storage)

	c.OAuthService = socialService.NewOAuthService(c.SocialRepo, c.Config.Social)
	c.AnalyzerService = socialService.NewAnalyzerService(c.InfluencerService)
}

func (c *Container) initHandlers() {
	c.InfluencerHandler = influencerHandler.NewInfluencerHandler(c.InfluencerService)
	c.ClaimHandler = claimHandler.NewClaimHandler(c.ClaimService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
	c.SocialHandler = socialHandler.NewSocialHandler(c.OAuthService, c.AnalyzerService)
}

// Cleanup releases held connections. Called during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("failed to close queue client: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("failed to close redis: %v", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("container cleanup completed")
}
