package client

import (
	"context"
	"fmt"

	"github.com/nitt-hospital/backend/internal/cache"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/queue/task"

	"github.com/hibiken/asynq"
)

// Client enqueues notice tasks for the asynq server.
type Client struct {
	client *asynq.Client
}

func New(cfg config.Cache) *Client {
	return &Client{client: asynq.NewClient(RedisOptions(cfg))}
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		}
	}
	return opts
}

func (c *Client) EnqueueNotice(ctx context.Context, notice task.SendNotice) error {
	t, err := task.NewSendNoticeTask(notice)
	if err != nil {
		return fmt.Errorf("create send notice task failed: %w", err)
	}

	if _, err := c.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send notice task failed: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
