package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notes-bin/wallpapersky/internal/api"
	"github.com/notes-bin/wallpapersky/internal/auth"
	"github.com/notes-bin/wallpapersky/internal/config"
	"github.com/notes-bin/wallpapersky/internal/redis"
	"github.com/notes-bin/wallpapersky/internal/stats"
	"github.com/notes-bin/wallpapersky/internal/storage"
	"github.com/notes-bin/wallpapersky/internal/store"
	"github.com/notes-bin/wallpapersky/internal/wallpaper"
)

func main() {
	// 初始化日志
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configPath := flag.String("config", "config/config.json", "path to the JSON config file")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if flag.Arg(0) == "token" {
		if err := issueToken(cfg, flag.Args()[1:]); err != nil {
			slog.Error("Failed to issue token", "error", err)
			os.Exit(1)
		}
		return
	}

	// 初始化图片目录
	images, err := storage.NewStorage(cfg.UploadDir)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// 初始化记录存储
	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := wallpaper.NewService(st, images)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stats.StartRefresh(ctx, svc, images, cfg.StatsRefreshInterval)

	// 设置路由
	router := api.SetupRouter(&cfg, svc, images)

	// 启动服务器
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		slog.Info("Server starting on port", "port", cfg.Port, "store", cfg.StoreDriver, "upload_dir", cfg.UploadDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		client, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	default:
		fs, err := store.NewFileStore(cfg.DBFile)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// issueToken 为上传/删除接口签发令牌并打印到标准输出
func issueToken(cfg config.Config, args []string) error {
	fset := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fset.String("sub", "admin", "token subject")
	ttl := fset.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fset.Parse(args); err != nil {
		return err
	}

	token, err := auth.NewAuth(cfg.JWTSecret).GenerateToken(*subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
