package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/routine"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage the daily routine directly",
}

func init() {
	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineRemoveCmd)
	routineCmd.AddCommand(routineNowCmd)
	routineCmd.AddCommand(routineNextCmd)
}

func openStore() *routine.Store {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return routine.NewStore(cfg.Paths.RoutineFile())
}

var routineListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all routine entries in time order",
	Run: func(cmd *cobra.Command, args []string) {
		entries := openStore().List()
		if len(entries) == 0 {
			fmt.Println("Routine is empty. Add an entry with 'rotina routine add'.")
			return
		}
		for _, e := range entries {
			fmt.Printf("%s - %s  %s\n", e.Start, e.End, e.Activity)
		}
	},
}

var routineAddCmd = &cobra.Command{
	Use:   "add <start> <end> <activity>",
	Short: "Add a routine entry (times in HH:MM)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		activity := args[2]
		for _, extra := range args[3:] {
			activity += " " + extra
		}
		entry, err := openStore().Add(args[0], args[1], activity)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("Added: %s - %s  %s", entry.Start, entry.End, entry.Activity))
		return nil
	},
}

var routineRemoveCmd = &cobra.Command{
	Use:   "remove <keyword>",
	Short: "Remove all entries whose activity contains the keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removal, err := openStore().Remove(args[0])
		if err != nil {
			return err
		}
		if !removal.Matched {
			fmt.Printf("No entries match %q.\n", args[0])
			return nil
		}
		fmt.Println(color.YellowString("Removed %d entries matching %q.", removal.Removed, args[0]))
		return nil
	},
}

var routineNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show what is scheduled right now",
	Run: func(cmd *cobra.Command, args []string) {
		printResolution(routine.NewResolver(openStore()).ResolveNow())
	},
}

var routineNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the current task and what follows it",
	Run: func(cmd *cobra.Command, args []string) {
		f := routine.NewResolver(openStore()).Following()
		printResolution(f.Current)
		if f.Next != nil {
			fmt.Printf("Then:   %s - %s  %s\n", f.Next.Start, f.Next.End, f.Next.Activity)
		}
	},
}

func printResolution(res routine.Resolution) {
	switch res.Status {
	case routine.StatusFound:
		fmt.Printf("Now:    %s - %s  %s\n", res.Start, res.End, res.Activity)
	case routine.StatusNextFound:
		fmt.Printf("Idle until %s, then: %s\n", res.Start, res.Activity)
	default:
		fmt.Println("Routine is empty.")
	}
}
