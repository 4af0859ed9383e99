// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/govstake/health"
	"github.com/vechain/govstake/metrics"
)

func TestStartMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("server_test_count").Add(1)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	url, err := StartMetricsServer(ctx, g, "localhost:0")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/metrics"))

	res, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "server_test_count")

	cancel()
	assert.NoError(t, g.Wait())
}

func TestServeListenError(t *testing.T) {
	g, ctx := errgroup.WithContext(context.Background())
	_, err := Serve(ctx, g, "test", "256.0.0.1:1", http.NotFoundHandler())
	assert.Error(t, err)
}

type readySource struct{}

func (readySource) Bootstrapped() (bool, error) { return true, nil }
func (readySource) LastTimestamp() uint64       { return 7 }

func TestStartAdminServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	var lvl slog.LevelVar
	url, err := StartAdminServer(ctx, g, "localhost:0", &lvl, health.New(readySource{}))
	require.NoError(t, err)

	res, err := http.Get(url + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	assert.NoError(t, g.Wait())
}
