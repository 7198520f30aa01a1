package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"surfhouse/internal/infra/config"
	"surfhouse/internal/infra/obs"
)

type LeadHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Board(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Move(c *gin.Context)
	Quote(c *gin.Context)
	Preview(c *gin.Context)
}

type PricingHTTP interface {
	GetConfig(c *gin.Context)
	ReplaceConfig(c *gin.Context)
}

type Handlers struct {
	Lead    LeadHTTP
	Pricing PricingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Lead != nil {
		api.POST("/leads", h.Lead.Create)
		api.GET("/leads", h.Lead.List)
		api.GET("/leads/board", h.Lead.Board)
		api.GET("/leads/:id", h.Lead.Get)
		api.PATCH("/leads/:id", h.Lead.Update)
		api.DELETE("/leads/:id", h.Lead.Delete)
		api.POST("/leads/:id/move", h.Lead.Move)
		api.POST("/leads/:id/quote", h.Lead.Quote)
		api.POST("/quotes/preview", h.Lead.Preview)
	}
	if h.Pricing != nil {
		api.GET("/pricing/config", h.Pricing.GetConfig)
		api.PUT("/pricing/config", h.Pricing.ReplaceConfig)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func configureGinMode(env string) string {
	switch env {
	case "dev", "local":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Mode()
}
