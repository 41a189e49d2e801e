package mock

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-memory Redis server with a connected client.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts a miniredis server and connects a client to it.
func NewRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

// Clear removes every key.
func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.Background()).Err()
}

// Close shuts down the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.Server.Close()
}
