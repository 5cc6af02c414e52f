// Package retry 提供指数退避重试辅助函数。
// 核心管线内部不做重试；需要重试的调用方（如 job-worker 包装网关调用）使用本包。
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config 重试配置
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Multiplier      float64
}

// DefaultConfig 默认重试配置
func DefaultConfig() Config {
	return Config{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		MaxElapsedTime:  time.Minute,
		Multiplier:      2,
	}
}

// Do 以指数退避方式重试 op，直到成功、ctx 取消或超过 MaxElapsedTime。
func Do(ctx context.Context, cfg Config, op func() error) error {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	if cfg.MaxElapsedTime > 0 {
		b.MaxElapsedTime = cfg.MaxElapsedTime
	}
	if cfg.Multiplier > 0 {
		b.Multiplier = cfg.Multiplier
	}

	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

// Permanent 标记不可重试的错误，Do 遇到后立即返回。
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}
