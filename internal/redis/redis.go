package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/notes-bin/wallpapersky/internal/model"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "wallpapersky"

type Client struct {
	*redis.Client
	prefix string
}

func NewClient(addr, password string, db, poolSize int, prefix string) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		client.Close()
		return nil, err
	}
	slog.Info("Connected to Redis", "addr", addr)
	return Wrap(client, prefix), nil
}

// Wrap 复用已有连接，不做连通性检查
func Wrap(client *redis.Client, prefix string) *Client {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Client{Client: client, prefix: prefix}
}

func (c *Client) DocumentKey() string {
	return fmt.Sprintf("%s:db", c.prefix)
}

// Load 读取整个壁纸文档；键不存在或内容损坏时返回空文档。
// 连接错误直接返回，避免随后的 Save 用空文档覆盖已有数据
func (c *Client) Load(ctx context.Context) (*model.Document, error) {
	data, err := c.Get(ctx, c.DocumentKey()).Bytes()
	if err == redis.Nil {
		return model.EmptyDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document from redis: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("Failed to parse document from Redis, using empty document", "key", c.DocumentKey(), "error", err)
		return model.EmptyDocument(), nil
	}
	return doc.Normalize(), nil
}

// Save 整体覆盖写入
func (c *Client) Save(ctx context.Context, doc *model.Document) error {
	data, err := json.MarshalIndent(doc.Clone().Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := c.Set(ctx, c.DocumentKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("save document to redis: %w", err)
	}
	return nil
}
