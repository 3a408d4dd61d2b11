package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-monsters/internal/dex"
)

var (
	flagDexLevel  int
	flagDexNature string
)

var dexCmd = &cobra.Command{
	Use:   "dex [species]",
	Short: "List species or show one species' stats",
	Long: `Without arguments, list every species with its types and base stat total.
With a species id or name, show its base stats, its stats at --level with
--nature and zero IVs, and its learnset.

Examples:
  monsters dex
  monsters dex flamelet
  monsters dex 4 --level 50 --nature timid`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDex,
}

func init() {
	dexCmd.Flags().IntVar(&flagDexLevel, "level", 50, "Level for computed stats")
	dexCmd.Flags().StringVar(&flagDexNature, "nature", "hardy", "Nature for computed stats")
}

func runDex(_ *cobra.Command, args []string) {
	e := loadEnv()

	if len(args) == 0 {
		listSpecies(e.dex)
		return
	}

	sp := findSpecies(e.dex, args[0])
	if sp == nil {
		fatalf("Error: unknown species %q\nRun 'monsters dex' to see all species.", args[0])
	}
	nature, ok := dex.ParseNature(flagDexNature)
	if !ok {
		fatalf("Error: unknown nature %q", flagDexNature)
	}
	if flagDexLevel < 1 || flagDexLevel > 100 {
		fatalf("Error: level %d not in [1,100]", flagDexLevel)
	}
	showSpecies(e.dex, sp, flagDexLevel, nature)
}

func listSpecies(d *dex.Dex) {
	fmt.Printf("  %-4s  %-12s  %-18s  %s\n", "ID", "Name", "Types", "Total")
	fmt.Printf("  %-4s  %-12s  %-18s  %s\n", "--", "----", "-----", "-----")
	for _, sp := range d.SpeciesList() {
		fmt.Printf("  %-4d  %-12s  %-18s  %d\n", sp.ID, sp.Name, typeNames(sp), sp.BaseStats.Total())
	}
}

func showSpecies(d *dex.Dex, sp *dex.Species, level int, nature dex.Nature) {
	fmt.Printf("#%d %s  [%s]\n", sp.ID, sp.Name, typeNames(sp))
	fmt.Println()

	computed := dex.ComputeStats(sp.BaseStats, dex.Stats{}, dex.Stats{}, d.NatureModifier(nature), level)
	base := sp.BaseStats.Values()
	at := computed.Values()
	labels := [...]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

	fmt.Printf("  %-8s  %4s  %s\n", "Stat", "Base", fmt.Sprintf("Lv%d %s", level, nature))
	fmt.Printf("  %-8s  %4s  %s\n", "----", "----", "------")
	for i, label := range labels {
		fmt.Printf("  %-8s  %4d  %d\n", label, base[i], at[i])
	}
	fmt.Printf("  %-8s  %4d  %d\n", "Total", sp.BaseStats.Total(), computed.Total())
	fmt.Println()

	fmt.Println("Learnset:")
	for _, entry := range sp.Learnset {
		mv, err := d.Move(entry.MoveID)
		if err != nil {
			continue
		}
		power := "-"
		if mv.Power > 0 {
			power = strconv.Itoa(mv.Power)
		}
		fmt.Printf("  Lv%-3d  %-14s  %-9s  %-8s  power %-3s  acc %d\n",
			entry.Level, mv.Name, mv.Type.DisplayName(), mv.Category, power, mv.Accuracy)
	}
}

// findSpecies looks a species up by id or case-insensitive name.
func findSpecies(d *dex.Dex, arg string) *dex.Species {
	if id, err := strconv.Atoi(arg); err == nil {
		sp, err := d.Species(id)
		if err != nil {
			return nil
		}
		return sp
	}
	for _, sp := range d.SpeciesList() {
		if strings.EqualFold(sp.Name, arg) {
			return sp
		}
	}
	return nil
}

func typeNames(sp *dex.Species) string {
	var names []string
	for _, t := range sp.TypeList() {
		names = append(names, t.DisplayName())
	}
	return strings.Join(names, "/")
}
