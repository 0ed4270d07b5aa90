// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"brandstudio/internal/models"
)

const (
	templateKeyPrefix = "template:"
	templateListKey   = "templates:active"

	// DefaultTemplateTTL bounds how stale a template can be after a reseed.
	DefaultTemplateTTL = 10 * time.Minute

	opTimeout = 500 * time.Millisecond
)

// TemplateLoader is the source of truth behind the cache.
type TemplateLoader interface {
	ListActive() ([]models.WorkflowTemplate, error)
	FindByID(id uuid.UUID) (*models.WorkflowTemplate, error)
}

// Templates is a read-through cache over a TemplateLoader. With a nil
// client it simply delegates. Valkey errors are logged and fall through
// to the loader.
type Templates struct {
	client *redis.Client
	loader TemplateLoader
	ttl    time.Duration
}

// NewTemplates creates a template cache. A zero ttl uses DefaultTemplateTTL.
func NewTemplates(client *redis.Client, loader TemplateLoader, ttl time.Duration) *Templates {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &Templates{client: client, loader: loader, ttl: ttl}
}

// ListActive returns active templates ordered by name.
func (c *Templates) ListActive() ([]models.WorkflowTemplate, error) {
	var cached []models.WorkflowTemplate
	if c.get(templateListKey, &cached) {
		return cached, nil
	}

	templates, err := c.loader.ListActive()
	if err != nil {
		return nil, err
	}
	c.set(templateListKey, templates)
	return templates, nil
}

// FindByID returns a template or nil. Misses are not cached.
func (c *Templates) FindByID(id uuid.UUID) (*models.WorkflowTemplate, error) {
	key := templateKeyPrefix + id.String()

	var cached models.WorkflowTemplate
	if c.get(key, &cached) {
		return &cached, nil
	}

	t, err := c.loader.FindByID(id)
	if err != nil || t == nil {
		return t, err
	}
	c.set(key, t)
	return t, nil
}

// Invalidate drops the list and every cached template.
func (c *Templates) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	keys := []string{templateListKey}
	iter := c.client.Scan(ctx, 0, templateKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("template cache scan error", "error", err)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("template cache invalidate error", "error", err)
	}
}

func (c *Templates) get(key string, dst any) bool {
	if c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("template cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("template cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("template cache hit", "key", key)
	return true
}

func (c *Templates) set(key string, v any) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "key", key, "error", err)
	}
}
