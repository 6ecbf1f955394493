package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client behind the same construction pattern
// the postgres package uses.
type Client struct {
	DB *redis.Client
}

type Config interface {
	GetAddr() string
	GetPassword() string
	GetDB() int
}

func New(ctx context.Context, config Config) (*Client, error) {
	db := redis.NewClient(&redis.Options{
		Addr:     config.GetAddr(),
		Password: config.GetPassword(),
		DB:       config.GetDB(),
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{DB: db}, nil
}

func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
