// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vechain/govstake/admin"
	"github.com/vechain/govstake/health"
)

// StartAdminServer serves the admin endpoints at addr until ctx is done.
func StartAdminServer(ctx context.Context, g *errgroup.Group, addr string, logLevel *slog.LevelVar, health *health.Health) (string, error) {
	url, err := Serve(ctx, g, "admin API", addr, admin.HTTPHandler(logLevel, health))
	if err != nil {
		return "", err
	}
	return url + "admin", nil
}
