// Package wallpapersky is the REST backend of a wallpaper-sharing site.
//
// Features:
// - List, upload and delete wallpapers
// - Metadata in a JSON file (or a single Redis key), images on local disk
// - Optional bearer-token protection for uploads and deletes
// - Rate limiting and Prometheus metrics
//
// Example usage:
//
//	go run . -config config/config.json
//	go run . token -sub admin -ttl 24h
//
// Configuration:
//
//	See config/config.json; PORT, UPLOAD_DIR, DB_FILE, STORE_DRIVER,
//	REDIS_ADDR and JWT_SECRET override it from the environment.
//
// API Documentation:
//
//	All endpoints are registered in internal/api/handler.go
package main
