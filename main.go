package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"LabLend-backend/docs"
	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/inventory/labs"
	"LabLend-backend/internal/lending/loans"
	"LabLend-backend/internal/maintenance/repairs"
	"LabLend-backend/internal/platform/auth"
	"LabLend-backend/internal/platform/config"
	"LabLend-backend/internal/platform/db"
	"LabLend-backend/internal/platform/idempotency"
	"LabLend-backend/internal/platform/requestid"
	"LabLend-backend/internal/platform/web"
	"LabLend-backend/internal/reports"
	"LabLend-backend/internal/users"
)

const apiPrefix = "/api/v1"

// @title                      LabLend API
// @version                    1.0
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	// 設定読み込み
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[ERROR] config: %v", err)
	}
	log.Printf("[INFO] mode:%s version:%s", cfg.Mode, cfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] db: %v", err)
	}
	defer conn.Close()
	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}

	// redis は任意。無効なら冪等キーとレポートキャッシュが素通しになる
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("[ERROR] redis: %v", err)
		}
		defer rdb.Close()
		log.Printf("[INFO] connected to redis: %s", cfg.Redis.Addr)
	}

	userSvc := users.NewService(users.NewStore(conn))
	if err := userSvc.EnsureAdmin(ctx, cfg.Auth.BootstrapAdmin); err != nil {
		log.Fatalf("[ERROR] bootstrap admin: %v", err)
	}
	secret := []byte(cfg.Auth.JWTSecret)
	accounts := auth.NewStore(conn)
	authSvc := auth.NewService(accounts, auth.NewTokenIssuer(secret, cfg.Auth.TokenTTL))
	loanSvc := loans.NewService(loans.NewStore(conn))
	idem := idempotency.New(rdb, idempotency.DefaultTTL).Middleware()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestid.Middleware())
	_ = r.SetTrustedProxies(nil)

	if cfg.IsDev() {
		// CORS（開発中のみ必要）
		origins := cfg.Server.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", idempotency.HeaderKey, requestid.Header},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Location", idempotency.HeaderReplayed, requestid.Header},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		docs.SwaggerInfo.BasePath = apiPrefix
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) {
		if err := conn.PingContext(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	api := r.Group(apiPrefix)
	authed := api.Group("", auth.RequireAuth(secret), auth.RequireActiveAccount(accounts))
	staff := authed.Group("", auth.RequireRole(auth.RoleTechnician, auth.RoleAdmin))
	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))

	auth.RegisterRoutes(api, authed, authSvc)
	users.RegisterRoutes(admin, userSvc)
	labs.RegisterRoutes(authed, admin, labs.NewService(labs.NewStore(conn)))
	equipment.RegisterRoutes(authed, admin, equipment.NewService(equipment.NewStore(conn)))
	loans.RegisterRoutes(authed, admin, loanSvc, idem)
	repairs.RegisterRoutes(authed, staff, admin, repairs.NewService(repairs.NewStore(conn)), idem)
	reports.RegisterRoutes(admin, reports.NewService(reports.NewStore(conn), reports.NewCache(rdb, cfg.Reports.CacheTTL)))

	// 管理画面（ビルド済み SPA）
	if cfg.Server.WebDir != "" {
		web.RegisterSPA(r, os.DirFS(cfg.Server.WebDir), apiPrefix+"/")
		log.Printf("[INFO] serving web UI from %s", cfg.Server.WebDir)
	}

	// 期日による状態遷移（APPROVED→ACTIVE, ACTIVE→OVERDUE）
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loans.NewSweeper(loanSvc, cfg.Sweeper.Interval).Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cert, key := tlsFiles(cfg); cert != "" {
			log.Printf("[INFO] listening on https://%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(cert, key)
		} else {
			log.Printf("[WARN] no certificate configured, listening on http://%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Println("[INFO] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	// DB を閉じる前に処理中の sweep を待つ
	wg.Wait()
}

// tlsFiles は mode ごとの証明書ディレクトリ（config/tls/{dev,release}）を解決する
func tlsFiles(cfg *config.Config) (string, string) {
	c := cfg.Server.Certificate
	if c.Cert == "" || c.Key == "" {
		return "", ""
	}
	dir := filepath.Join("config", "tls", cfg.Mode)
	return filepath.Join(dir, c.Cert), filepath.Join(dir, c.Key)
}
