package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/platform/tui"
	"github.com/vovakirdan/tui-monsters/internal/session"
)

var (
	flagStarter       int
	flagLevel         int
	flagZone          string
	flagBattleStarter int
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Fight wild monsters interactively",
	Long: `Choose a starter, walk into the tall grass and fight the wild monsters
you meet. Your team carries its HP and PP from one battle to the next; a
wiped-out team is restored.

Controls:
  Up/Down    - Move cursor
  Enter      - Select / next message
  Esc/B      - Back to the action menu
  R          - New encounter (after a battle)
  Q/Ctrl+C   - Quit

Examples:
  monsters battle                         # Pick a starter from the menu
  monsters battle --starter 2 --level 10
  monsters battle --zone dry-hollow --seed 7`,
	Run: runBattle,
}

func init() {
	battleCmd.Flags().IntVar(&flagBattleStarter, "starter", 0, "Starter species id (0 = pick from a menu)")
	battleCmd.Flags().IntVar(&flagLevel, "level", 0, "Starter level (0 = config default)")
	battleCmd.Flags().StringVar(&flagZone, "zone", "", "Encounter zone (default from config)")
}

func runBattle(_ *cobra.Command, _ []string) {
	e := loadEnv()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    e.seed,
	}

	starter := flagBattleStarter
	if starter == 0 {
		picked, updatedCfg, err := tui.RunStarterMenu(e.dex, cfg)
		if err != nil {
			fatalf("Error: %v", err)
		}
		// User quit
		if picked == nil {
			return
		}
		starter = picked.ID
		cfg = updatedCfg
	}

	var opts []session.Option
	store := openStore(e.logger)
	if store != nil {
		defer store.Close()
		opts = append(opts, session.WithSaver(store))
	}

	sess, err := e.newSession(starter, flagLevel, flagZone, opts...)
	if err != nil {
		fatalf("Error: %v", err)
	}

	mgr, err := sess.NextEncounter(1000)
	if err != nil {
		fatalf("Error: %v", err)
	}

	if err := tui.RunBattle(mgr, sess, cfg); err != nil {
		fatalf("Error running battle: %v", err)
	}
}
