// monsters is a terminal creature-battle engine: walk through tall grass,
// meet wild monsters and fight them turn by turn.
//
// Usage:
//
//	monsters battle          - Walk into a wild battle and fight it interactively
//	monsters sim             - Run automatic battles and print the tallies
//	monsters walk            - Walk a zone and report encounters
//	monsters dex [species]   - List species or show one species' stats
//	monsters records         - Show recorded battles
//	monsters serve           - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible battles
//	--db <path>         - Set database path (default: ~/.monsters/battles.db)
//	--config <path>     - Engine config YAML
//	--dex <dir>         - Directory with species/moves/natures/typechart/zones YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/session"
	"github.com/vovakirdan/tui-monsters/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagDexDir   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monsters",
	Short: "Monsters - turn-based creature battles in your terminal",
	Long: `Monsters is a terminal creature-battle engine. Walk through tall grass,
run into wild monsters and battle them turn by turn.

Available commands:
  battle   - Fight wild monsters interactively
  sim      - Run automatic battles and print the tallies
  walk     - Walk a zone and report encounters
  dex      - Browse species and their stats
  records  - View recorded battles
  serve    - Start SSH server for remote play

Examples:
  monsters battle --starter 1
  monsters sim --battles 100 --seed 42
  monsters walk --zone dry-hollow --steps 500
  monsters dex flamelet --level 50
  monsters serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.monsters/battles.db", "Path to battle records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDexDir, "dex", "", "Directory with custom dex YAML files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(dexCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// env is what every command loads before it runs.
type env struct {
	cfg    config.EngineConfig
	dex    *dex.Dex
	logger *log.Logger
	seed   int64
}

// loadEnv loads config and dex and builds the logger. Errors exit.
func loadEnv() env {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		fatalf("Error: %v", err)
	}

	d, err := dex.Load(flagDexDir)
	if err != nil {
		fatalf("Error loading dex: %v", err)
	}

	seed, err := core.ResolveSeed(flagSeed)
	if err != nil {
		fatalf("Error: %v", err)
	}
	logger.Debug("environment loaded", "seed", seed, "species", len(d.SpeciesList()), "zones", len(d.ZoneIDs()))

	return env{cfg: cfg, dex: d, logger: logger, seed: seed}
}

func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "monsters",
	})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// newSession creates a session holding one starter in the given zone. An
// empty zone uses the configured default.
func (e env) newSession(starter, level int, zone string, opts ...session.Option) (*session.Session, error) {
	opts = append([]session.Option{session.WithLogger(e.logger)}, opts...)
	sess := session.New(e.dex, e.cfg, core.NewRand(e.seed), opts...)
	if err := sess.ChooseStarter(starter, level); err != nil {
		return nil, err
	}
	if zone == "" {
		zone = e.cfg.Encounter.DefaultZone
	}
	if err := sess.EnterZone(zone); err != nil {
		return nil, err
	}
	return sess, nil
}

// openStore opens the records database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open battle database", "error", err)
		return nil
	}
	return store
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
