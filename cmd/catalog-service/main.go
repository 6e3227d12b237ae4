package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/storefront-catalog/docs"
	"github.com/MikeMC777/storefront-catalog/internal/cart"
	"github.com/MikeMC777/storefront-catalog/internal/catalog"
	"github.com/MikeMC777/storefront-catalog/internal/category"
	"github.com/MikeMC777/storefront-catalog/internal/config"
	"github.com/MikeMC777/storefront-catalog/internal/db"
	"github.com/MikeMC777/storefront-catalog/internal/httpx"
	"github.com/MikeMC777/storefront-catalog/internal/logx"
	"github.com/MikeMC777/storefront-catalog/internal/product"
)

type deps struct {
	base       string
	svc        *catalog.Service
	products   product.Repository
	cart       cart.API
	jwtSecret  string
	origins    []string
	cartPerMin int
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(httpx.Identity(d.jwtSecret))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET(d.base, catalogPageHandler(d.svc, d.base))
	r.GET(d.base+"/skeleton", skeletonHandler)
	r.GET(d.base+"/:id", productDetailHandler(d.svc))
	r.POST(d.base+"/filters", commitFiltersHandler(d.base))
	r.DELETE(d.base+"/filters", clearFiltersHandler(d.base))
	r.POST(d.base+"/filters/search/toggle", toggleSearchHandler(d.base))

	r.POST("/cart/items", httpx.RateLimit(d.cartPerMin), addToCartHandler(d.products, d.cart, newInflight()))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("config")
	}
	logx.Init(logx.Options{Production: cfg.Production()})
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logx.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		logx.Fatal().Err(err).Msg("migrate")
	}

	ropts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logx.Fatal().Err(err).Msg("redis url")
	}
	rdb := redis.NewClient(ropts)
	defer rdb.Close()

	categories := category.NewCache(rdb, category.NewPGRepo(pool), cfg.CategoryTTL)
	// The schema may have just been seeded.
	if err := categories.Invalidate(ctx); err != nil {
		logx.Warn().Err(err).Msg("category cache invalidate")
	}
	products := product.NewPGRepo(pool)

	cartClient, conn, err := cart.Dial(cfg.CartSvcAddr)
	if err != nil {
		logx.Fatal().Err(err).Msg("cart service")
	}
	defer conn.Close()

	router := newRouter(deps{
		base:       cfg.CatalogBasePath,
		svc:        catalog.NewService(products, categories),
		products:   products,
		cart:       cartClient,
		jwtSecret:  cfg.JWTSecret,
		origins:    cfg.AllowedOrigins,
		cartPerMin: cfg.CartRatePerMin,
	})

	srv := &http.Server{Addr: cfg.CatalogSvcAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logx.Info().Str("addr", cfg.CatalogSvcAddr).Msg("catalog-service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown")
	}
	logx.Info().Msg("catalog-service stopped")
}
