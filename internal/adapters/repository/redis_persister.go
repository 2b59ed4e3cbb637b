package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/taskmaster/planner/internal/infrastructure/config"
)

// RedisPersister keeps the document in one redis hash, one field per resource
type RedisPersister struct {
	client *redis.Client
	key    string
}

// NewRedisPersister connects to redis and checks the connection
func NewRedisPersister(ctx context.Context, cfg config.RedisConfig) (*RedisPersister, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	return &RedisPersister{client: client, key: cfg.Key}, nil
}

// Load reads every resource field of the hash
func (p *RedisPersister) Load(ctx context.Context) (map[string]interface{}, error) {
	fields, err := p.client.HGetAll(ctx, p.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.key, err)
	}
	return decodeFields(fields)
}

// Save replaces the hash with the document in one transaction
func (p *RedisPersister) Save(ctx context.Context, doc map[string]interface{}) error {
	fields, err := encodeFields(doc)
	if err != nil {
		return err
	}

	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, p.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, p.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", p.key, err)
	}
	return nil
}

// Close releases the connection pool
func (p *RedisPersister) Close() error {
	return p.client.Close()
}

func encodeFields(doc map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(doc))
	for name, body := range doc {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = string(raw)
	}
	return fields, nil
}

func decodeFields(fields map[string]string) (map[string]interface{}, error) {
	doc := make(map[string]interface{}, len(fields))
	for name, raw := range fields {
		var body interface{}
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		doc[name] = body
	}
	return doc, nil
}
