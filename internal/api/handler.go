package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/notes-bin/wallpapersky/internal/auth"
	"github.com/notes-bin/wallpapersky/internal/config"
	"github.com/notes-bin/wallpapersky/internal/metrics"
	"github.com/notes-bin/wallpapersky/internal/model"
	"github.com/notes-bin/wallpapersky/internal/storage"
	"github.com/notes-bin/wallpapersky/internal/upload"
	"github.com/notes-bin/wallpapersky/internal/wallpaper"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Wallpapers is the record API the handlers drive.
type Wallpapers interface {
	List(ctx context.Context) ([]model.Wallpaper, error)
	Create(ctx context.Context, in wallpaper.CreateInput) (model.Wallpaper, error)
	Delete(ctx context.Context, id int64) error
}

// Images is the on-disk image directory.
type Images interface {
	upload.FileStorer
	DeleteFile(filename string) error
	Dir() string
}

type Handler struct {
	config     *config.Config
	auth       *auth.Auth
	wallpapers Wallpapers
	images     Images
	uploads    *upload.Receiver
}

func NewHandler(config *config.Config, auth *auth.Auth, wallpapers Wallpapers, images Images) *Handler {
	return &Handler{
		config:     config,
		auth:       auth,
		wallpapers: wallpapers,
		images:     images,
		uploads:    upload.NewReceiver(images, "image", config.MaxUploadSize),
	}
}

func SetupRouter(config *config.Config, wallpapers Wallpapers, images Images) http.Handler {
	h := NewHandler(config, auth.NewAuth(config.JWTSecret), wallpapers, images)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if config.CORSOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{config.CORSOrigin},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	r.Use(RateLimitMiddleware(config.RateLimit.Requests, config.RateLimit.Duration))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// 图片静态访问
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(images.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/wallpapers", func(r chi.Router) {
		r.Get("/", h.ListWallpapers)

		// 需要认证的路由（未配置 jwt_secret 时放行）
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)
			r.Post("/", h.CreateWallpaper)
			r.Delete("/{id}", h.DeleteWallpaper)
		})
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListWallpapers(w http.ResponseWriter, r *http.Request) {
	list, err := h.wallpapers.List(r.Context())
	if err != nil {
		slog.Error("Failed to list wallpapers", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list wallpapers")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateWallpaper(w http.ResponseWriter, r *http.Request) {
	filename, err := h.uploads.Receive(w, r)
	metrics.ObserveOperation("upload", err)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrNotImage):
			respondError(w, http.StatusBadRequest, "Only image files are allowed!")
		case errors.Is(err, upload.ErrMissingFile):
			respondError(w, http.StatusBadRequest, "Image file is required")
		case errors.Is(err, storage.ErrBadExtension):
			respondError(w, http.StatusBadRequest, "File extension too long")
		case errors.Is(err, upload.ErrInvalidForm):
			respondError(w, http.StatusBadRequest, "Invalid upload")
		default:
			slog.Error("Failed to store upload", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to save file")
		}
		return
	}

	wp, err := h.wallpapers.Create(r.Context(), wallpaper.CreateInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Filename:    filename,
	})
	metrics.ObserveOperation("create", err)
	if err != nil {
		// 元数据写入失败时清理已保存的文件
		if rmErr := h.images.DeleteFile(filename); rmErr != nil {
			slog.Error("Failed to remove orphaned upload", "filename", filename, "error", rmErr)
		}
		slog.Error("Failed to create wallpaper", "filename", filename, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save metadata")
		return
	}

	slog.Info("Wallpaper uploaded", "id", wp.ID, "by", SubjectFrom(r.Context()))
	respondJSON(w, http.StatusCreated, wp)
}

func (h *Handler) DeleteWallpaper(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid wallpaper id")
		return
	}

	err = h.wallpapers.Delete(r.Context(), id)
	switch {
	case errors.Is(err, wallpaper.ErrNotFound):
		respondError(w, http.StatusNotFound, "Wallpaper not found")
		return
	case err != nil:
		metrics.ObserveOperation("delete", err)
		slog.Error("Failed to delete wallpaper", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete wallpaper")
		return
	}

	metrics.ObserveOperation("delete", nil)
	slog.Info("Wallpaper removed", "id", id, "by", SubjectFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, status int, message string) {
	slog.Warn("Request failed", "status", status, "message", message)
	respondJSON(w, status, map[string]string{"error": message})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
