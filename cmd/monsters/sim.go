package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-monsters/internal/battle"
	"github.com/vovakirdan/tui-monsters/internal/session"
)

var (
	flagBattles  int
	flagMaxTurns int
	flagSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run automatic battles and print the tallies",
	Long: `Walk the zone and fight every encounter automatically. The starter uses
a random damaging move each turn. The team is healed after every battle so
each one starts fresh.

Examples:
  monsters sim
  monsters sim --battles 500 --starter 3 --level 8
  monsters sim --seed 42 --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagBattles, "battles", 100, "Number of battles to run")
	simCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 200, "Turn limit per battle")
	simCmd.Flags().IntVar(&flagStarter, "starter", 1, "Starter species id")
	simCmd.Flags().IntVar(&flagLevel, "level", 0, "Starter level (0 = config default)")
	simCmd.Flags().StringVar(&flagZone, "zone", "", "Encounter zone (default from config)")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record every battle in the database")
}

func runSim(_ *cobra.Command, _ []string) {
	e := loadEnv()

	var opts []session.Option
	if flagSave {
		store := openStore(e.logger)
		if store != nil {
			defer store.Close()
			opts = append(opts, session.WithSaver(store))
		}
	}

	sess, err := e.newSession(flagStarter, flagLevel, flagZone, opts...)
	if err != nil {
		fatalf("Error: %v", err)
	}

	counts := make(map[battle.Result]int)
	wildSeen := make(map[string]int)
	turns, unfinished := 0, 0
	for i := 0; i < flagBattles; i++ {
		m, err := sess.AutoBattle(1000, flagMaxTurns)
		if err != nil {
			if m == nil {
				fatalf("Error: %v", err)
			}
			e.logger.Warn("battle unfinished", "battle", i+1, "error", err)
			unfinished++
			sess.Heal()
			continue
		}
		counts[m.Result()]++
		wildSeen[m.ActiveEnemy().Name()]++
		turns += m.Turn()
		sess.Heal()
	}

	team := sess.Team()
	lead, _ := e.dex.Species(team[0].SpeciesID)
	fmt.Printf("Simulated %d battles in %s with %s Lv%d (seed %d)\n",
		flagBattles, sess.Zone().Name, lead.Name, team[0].Level, e.seed)
	fmt.Println()

	finished := flagBattles - unfinished
	fmt.Printf("  %-10s  %s\n", "Result", "Count")
	fmt.Printf("  %-10s  %s\n", "------", "-----")
	for _, r := range []battle.Result{battle.ResultVictory, battle.ResultDefeat, battle.ResultEscape} {
		fmt.Printf("  %-10s  %d\n", r, counts[r])
	}
	if unfinished > 0 {
		fmt.Printf("  %-10s  %d\n", "unfinished", unfinished)
	}
	fmt.Println()

	if finished > 0 {
		fmt.Printf("Win rate: %.1f%%\n", 100*float64(counts[battle.ResultVictory])/float64(finished))
		fmt.Printf("Average turns: %.1f\n", float64(turns)/float64(finished))
	}
	fmt.Println()
	fmt.Println("Wild monsters met:")
	for _, entry := range e.dex.SpeciesList() {
		if n := wildSeen[entry.Name]; n > 0 {
			fmt.Printf("  %-12s  %d\n", entry.Name, n)
		}
	}
}
