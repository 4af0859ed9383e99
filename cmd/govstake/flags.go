// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/govstake/log"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to the genesis YAML file, dev genesis when empty",
		EnvVar: "GOVSTAKE_CONFIG",
	}
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for contract storage",
		EnvVar: "GOVSTAKE_DATA_DIR",
	}
	inMemoryFlag = cli.BoolFlag{
		Name:   "in-memory",
		Usage:  "keep contract storage in memory only",
		EnvVar: "GOVSTAKE_IN_MEMORY",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  128,
		Usage:  "megabytes of ram allocated to the storage cache",
		EnvVar: "GOVSTAKE_CACHE",
	}
	slotCacheFlag = cli.IntFlag{
		Name:   "slot-cache",
		Value:  65536,
		Usage:  "number of committed storage slots cached in memory",
		EnvVar: "GOVSTAKE_SLOT_CACHE",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
		EnvVar: "GOVSTAKE_API_ADDR",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
		EnvVar: "GOVSTAKE_API_CORS",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		Usage:  "enables API requests logging",
		EnvVar: "GOVSTAKE_ENABLE_API_LOGS",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-9)",
		EnvVar: "GOVSTAKE_VERBOSITY",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		Usage:  "output logs in JSON format",
		EnvVar: "GOVSTAKE_JSON_LOGS",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "GOVSTAKE_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: "GOVSTAKE_METRICS_ADDR",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		Usage:  "enables admin server",
		EnvVar: "GOVSTAKE_ENABLE_ADMIN",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2113",
		Usage:  "admin service listening address",
		EnvVar: "GOVSTAKE_ADMIN_ADDR",
	}
	devTimestampsFlag = cli.BoolFlag{
		Name:   "dev-timestamps",
		Usage:  "accept call timestamps not ahead of the host clock (development only)",
		EnvVar: "GOVSTAKE_DEV_TIMESTAMPS",
	}
)
