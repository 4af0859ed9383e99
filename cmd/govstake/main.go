// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/govstake/api"
	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/cmd/govstake/httpserver"
	"github.com/vechain/govstake/health"
	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/lvldb"
	"github.com/vechain/govstake/metrics"
	"github.com/vechain/govstake/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	// flags read GOVSTAKE_* variables, a .env file may provide them
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Version:   fullVersion(),
		Name:      "govstake",
		Usage:     "Time-weighted governance staking host",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			inMemoryFlag,
			cacheFlag,
			slotCacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			devTimestampsFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "genesis",
				Usage:  "print the effective genesis config",
				Flags:  []cli.Flag{configFlag},
				Action: genesisAction,
			},
			{
				Name:  "state",
				Usage: "print the staking state stored in the data dir",
				Flags: []cli.Flag{
					configFlag,
					dataDirFlag,
					cacheFlag,
					slotCacheFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: stateAction,
			},
		},
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	gene, err := newGenesis(cfg)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		metrics.InitializePrometheusMetrics()
	}

	var (
		db          *lvldb.LevelDB
		instanceDir string
	)
	if ctx.Bool(inMemoryFlag.Name) {
		instanceDir = "Memory"
		db = openMemDB()
	} else {
		instanceDir = makeInstanceDir(ctx, gene)
		db = openMainDB(ctx, instanceDir)
	}
	defer func() { logger.Info("closing database..."); db.Close() }()

	h, err := openHost(ctx, db, gene)
	if err != nil {
		return err
	}

	exitCtx := handleExitSignal()
	g, gctx := errgroup.WithContext(exitCtx)

	apiURL, err := httpserver.Serve(gctx, g, "API", cfg.API.Addr, api.New(h, api.Options{
		ChainTag:        gene.ChainTag(),
		AllowedOrigins:  cfg.API.CORS,
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   cfg.Metrics.Addr != "",
	}))
	if err != nil {
		return err
	}

	metricsURL := "disabled"
	if cfg.Metrics.Addr != "" {
		if metricsURL, err = httpserver.StartMetricsServer(gctx, g, cfg.Metrics.Addr); err != nil {
			return err
		}
	}

	adminURL := "disabled"
	if ctx.Bool(enableAdminFlag.Name) {
		if adminURL, err = httpserver.StartAdminServer(gctx, g, ctx.String(adminAddrFlag.Name), logLevel, health.New(h)); err != nil {
			return err
		}
	}

	printStartupMessage(gene, h, instanceDir, apiURL, metricsURL, adminURL)

	return g.Wait()
}

func genesisAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	gene, err := newGenesis(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("# %v %v\n", gene.ID(), gene.Name())
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func stateAction(ctx *cli.Context) error {
	initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	gene, err := newGenesis(cfg)
	if err != nil {
		return err
	}

	db := openMainDB(ctx, makeInstanceDir(ctx, gene))
	defer db.Close()

	h, err := openHost(ctx, db, nil)
	if err != nil {
		return err
	}
	out := map[string]any{"lastTimestamp": h.LastTimestamp()}
	if err := h.Read(func(st *state.State) error {
		s, err := builtin.Staking.Native(st)
		if err != nil {
			return err
		}
		settings, err := s.Settings()
		if err != nil {
			return err
		}
		pool, err := s.Pool()
		if err != nil {
			return err
		}
		supply, err := builtin.Token.Native(st).TotalSupply()
		if err != nil {
			return err
		}
		out["settings"] = settings
		out["pool"] = pool
		out["withdrawDelay"] = s.WithdrawDelay()
		out["totalSupply"] = supply
		return nil
	}); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
