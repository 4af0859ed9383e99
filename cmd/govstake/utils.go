// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/govstake/genesis"
	"github.com/vechain/govstake/host"
	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/lvldb"
)

func fatal(args ...any) {
	var w *os.File
	if runtime.GOOS == "windows" {
		// a workaround for issue https://github.com/inconshreveable/log15/issues/64
		w = os.Stdout
	} else {
		w = os.Stderr
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var lvl slog.LevelVar
	lvl.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	log.SetHandler(log.NewHandlerWithLevel(os.Stderr, &lvl, ctx.Bool(jsonLogsFlag.Name)))
	return &lvl
}

// loadConfig reads the genesis config named by the config flag, or the dev
// config. Listener flags set on the command line or in the environment take
// precedence over the file.
func loadConfig(ctx *cli.Context) (*genesis.Config, error) {
	cfg := genesis.DevConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := genesis.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if ctx.IsSet(apiAddrFlag.Name) || cfg.API.Addr == "" {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.CORS = ctx.String(apiCorsFlag.Name)
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		if ctx.IsSet(metricsAddrFlag.Name) || cfg.Metrics.Addr == "" {
			cfg.Metrics.Addr = ctx.String(metricsAddrFlag.Name)
		}
	}
	return cfg, nil
}

func newGenesis(cfg *genesis.Config) (*genesis.Genesis, error) {
	gene, err := genesis.NewCustomNet(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "build genesis")
	}
	return gene, nil
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func instanceDirName(gene *genesis.Genesis) string {
	return fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:])
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	instanceDir := filepath.Join(makeDataDir(ctx), instanceDirName(gene))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}
	return sizeMB
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 256,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func openMemDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

// openHost opens the host over db. With a genesis, an empty db is
// bootstrapped; without one the db must already hold state.
func openHost(ctx *cli.Context, db *lvldb.LevelDB, gene *genesis.Genesis) (*host.Host, error) {
	opts := []host.Option{host.WithCacheSize(ctx.Int(slotCacheFlag.Name))}
	if ctx.Bool(devTimestampsFlag.Name) {
		logger.Warn("call timestamps are accepted from clients")
		opts = append(opts, host.WithManualTime())
	}
	h, err := host.New(db, opts...)
	if err != nil {
		return nil, err
	}
	done, err := h.Bootstrapped()
	if err != nil {
		return nil, err
	}
	if done {
		return h, nil
	}
	if gene == nil {
		return nil, host.ErrNotBootstrapped
	}
	if err := h.Bootstrap(gene.LaunchTime(), gene.Build); err != nil {
		return nil, err
	}
	logger.Info("genesis state committed", "id", gene.ID(), "name", gene.Name())
	return h, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, h *host.Host, dataDir, apiURL, metricsURL, adminURL string) {
	last := h.LastTimestamp()
	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Launch time  [ %v ]
    Last call    [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		"govstake/"+fullVersion(),
		gene.ID(), gene.Name(),
		msToTime(gene.LaunchTime()),
		msToTime(last),
		dataDir,
		apiURL,
		metricsURL,
		adminURL)
}

func msToTime(ms uint64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".govstake")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
