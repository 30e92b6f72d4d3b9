package redis

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
)

// Embedded runs an in-process redis server (miniredis) and connects a Client
// to it, so single-node and local setups use the same code path as a real
// redis. State is lost when the process exits.
type Embedded struct {
	*Client
	server *miniredis.Miniredis
}

func NewEmbedded(ctx context.Context, logg *logger.Logger) (*Embedded, error) {
	server := miniredis.NewMiniRedis()
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start embedded redis: %w", err)
	}
	client, err := New(ctx, config.RedisConfig{Address: server.Addr()}, logg)
	if err != nil {
		server.Close()
		return nil, err
	}
	return &Embedded{Client: client, server: server}, nil
}

// Close disconnects the client and stops the server.
func (e *Embedded) Close() error {
	err := e.Client.Close()
	e.server.Close()
	return err
}
