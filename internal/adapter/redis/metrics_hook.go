package redis

import (
	"context"
	"errors"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// OpRecorder receives one call per Redis command.
type OpRecorder interface {
	RedisOp(operation, status string, duration time.Duration)
	RedisConnectionError()
}

// MetricsHook reports every command and failed dial to an OpRecorder.
type MetricsHook struct {
	rec OpRecorder
}

var _ goredis.Hook = (*MetricsHook)(nil)

func NewMetricsHook(rec OpRecorder) *MetricsHook {
	return &MetricsHook{rec: rec}
}

func (h *MetricsHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.rec.RedisConnectionError()
		}
		return conn, err
	}
}

func (h *MetricsHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.rec.RedisOp(cmd.Name(), opStatus(err), time.Since(start))
		return err
	}
}

// Pipelines count as a single operation.
func (h *MetricsHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.rec.RedisOp("pipeline", opStatus(err), time.Since(start))
		return err
	}
}

func opStatus(err error) string {
	if err != nil && !errors.Is(err, goredis.Nil) {
		return "error"
	}
	return "success"
}
