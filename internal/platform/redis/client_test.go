// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/passage/internal/platform/redis"
)

func TestParseOptions(t *testing.T) {
	options, err := redisstore.ParseOptions("redis://:secret@cache.internal:6380/2", 6)
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 6, options.PoolSize)
	assert.Equal(t, 3, options.MaxIdleConns)

	options, err = redisstore.ParseOptions("redis://cache.internal:6379/0", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, options.PoolSize)

	_, err = redisstore.ParseOptions("http://cache.internal", 1)
	assert.Error(t, err)
}

func TestNewClientAndPing(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr()+"/0", 2, logger)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, redisstore.Ping(context.Background(), client))

	server.SetError("ERR maintenance")
	assert.ErrorContains(t, redisstore.Ping(context.Background(), client), "redis: ping failed")
}

func TestNewClient_Unreachable(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	addr := server.Addr()
	server.Close()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, err = redisstore.NewClient(context.Background(), "redis://"+addr, 1, logger)
	assert.Error(t, err)
}
