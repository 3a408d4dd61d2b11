package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-monsters/internal/platform/tui"
	"github.com/vovakirdan/tui-monsters/internal/storage"
)

var (
	flagRecordsLimit int
	flagInteractive  bool
	flagClear        bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show recorded battles",
	Long: `Display the most recent battles, the overall tally and per-lead statistics
from the battle records database.

Examples:
  monsters records
  monsters records --limit 50
  monsters records --interactive
  monsters records --clear`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of recent battles to show")
	recordsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse records in a table")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded battle")
}

func runRecords(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("Error opening battle database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearBattles(); err != nil {
			fatalf("Error clearing battles: %v", err)
		}
		fmt.Println("All battle records deleted.")
		return
	}

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunRecords(store, width, height); err != nil {
			fatalf("Error: %v", err)
		}
		return
	}

	printRecords(store)
}

func printRecords(store *storage.Store) {
	records, err := store.RecentBattles(flagRecordsLimit)
	if err != nil {
		fatalf("Error retrieving battles: %v", err)
	}

	fmt.Println("Recent Battles")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Play 'monsters battle' or 'monsters sim --save' to record some!")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-16s  %-16s  %s\n", "Date", "Result", "Lead", "Opponent", "Turns")
	fmt.Printf("  %-16s  %-8s  %-16s  %-16s  %s\n", "----", "------", "----", "--------", "-----")
	for _, r := range records {
		opponent := fmt.Sprintf("%s Lv%d", r.EnemyLead, r.EnemyLevel)
		if r.TrainerName != "" {
			opponent = r.TrainerName
		}
		fmt.Printf("  %-16s  %-8s  %-16s  %-16s  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Result,
			fmt.Sprintf("%s Lv%d", r.PlayerLead, r.PlayerLevel),
			opponent,
			r.Turns,
		)
	}
	fmt.Println()

	tally, err := store.Tally()
	if err == nil {
		fmt.Printf("Total: %d battles, %d won, %d lost, %d escaped (win rate %.1f%%)\n",
			tally.Battles, tally.Victories, tally.Defeats, tally.Escapes, tally.WinRate()*100)
	}

	byLead, err := store.StatsByLead()
	if err != nil || len(byLead) == 0 {
		return
	}
	leads := make([]string, 0, len(byLead))
	for lead := range byLead {
		leads = append(leads, lead)
	}
	sort.Strings(leads)

	fmt.Println()
	fmt.Printf("  %-12s  %-7s  %-4s  %s\n", "Lead", "Battles", "Wins", "Avg turns")
	fmt.Printf("  %-12s  %-7s  %-4s  %s\n", "----", "-------", "----", "---------")
	for _, lead := range leads {
		s := byLead[lead]
		fmt.Printf("  %-12s  %-7d  %-4d  %.1f\n", lead, s.Battles, s.Victories, s.AvgTurns)
	}
}
