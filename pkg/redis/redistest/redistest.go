// Package redistest starts a miniredis server per test with a connected
// client.
package redistest

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/redis"
)

// New returns a client backed by a fresh server. Both are closed when the
// test ends. Use the server to inspect keys or move time forward.
func New(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := redis.New(context.Background(), config.RedisConfig{Address: server.Addr()}, nil)
	if err != nil {
		t.Fatalf("connect to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}
