package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/session"
)

var flagSteps int

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Walk a zone and report encounters",
	Long: `Take a random walk through a zone's map and list every wild monster
that jumps out of the grass. No battles are fought.

Examples:
  monsters walk
  monsters walk --zone dry-hollow --steps 2000 --seed 3`,
	Run: runWalk,
}

func init() {
	walkCmd.Flags().IntVar(&flagSteps, "steps", 500, "Number of steps to walk")
	walkCmd.Flags().StringVar(&flagZone, "zone", "", "Encounter zone (default from config)")
}

func runWalk(_ *cobra.Command, _ []string) {
	e := loadEnv()

	zone := flagZone
	if zone == "" {
		zone = e.cfg.Encounter.DefaultZone
	}
	sess := session.New(e.dex, e.cfg, core.NewRand(e.seed), session.WithLogger(e.logger))
	if err := sess.EnterZone(zone); err != nil {
		fatalf("Error: %v", err)
	}

	z := sess.Zone()
	fmt.Printf("Walking %d steps in %s (rate %.0f%%, seed %d)\n", flagSteps, z.Name, z.Rate, e.seed)
	fmt.Println()
	for _, row := range z.Layout {
		fmt.Printf("  %s\n", row)
	}
	fmt.Println()

	fmt.Printf("  %-6s  %-12s  %-5s  %s\n", "Step", "Species", "Level", "Nature")
	fmt.Printf("  %-6s  %-12s  %-5s  %s\n", "----", "-------", "-----", "------")

	walked, found := 0, 0
	for walked < flagSteps {
		wild, n, err := sess.Walk(flagSteps - walked)
		if err != nil {
			fatalf("Error: %v", err)
		}
		walked += n
		if wild == nil {
			break
		}
		found++

		name := fmt.Sprintf("#%d", wild.SpeciesID)
		if sp, err := e.dex.Species(wild.SpeciesID); err == nil {
			name = sp.Name
		}
		if wild.Shiny {
			name += " *"
		}
		fmt.Printf("  %-6d  %-12s  %-5d  %s\n", walked, name, wild.Level, wild.Nature)
	}

	fmt.Println()
	if found == 0 {
		fmt.Println("Nothing jumped out of the grass.")
		return
	}
	fmt.Printf("%d encounters, one every %.1f steps\n", found, float64(walked)/float64(found))
}
