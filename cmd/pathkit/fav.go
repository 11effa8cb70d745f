package main

import (
	"fmt"
	"strconv"

	"github.com/gobeaver/pathkit"
	"github.com/gobeaver/pathkit/driver/favorites"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favorites"},
	Short:   "list favorites",
	Args:    cobra.NoArgs,
	RunE:    doFavList,
}

var favSetCmd = &cobra.Command{
	Use:     "set [slot] [path]",
	Short:   "bookmark a path in slot 0..10 (10 is the same as 0)",
	Example: "pathkit fav set 3 zip:///tmp/backup.zip/docs/",
	Args:    cobra.ExactArgs(2),
	RunE:    doFavSet,
}

var favClearCmd = &cobra.Command{
	Use:   "clear [slot]",
	Short: "clear a favorite slot",
	Args:  cobra.ExactArgs(1),
	RunE:  doFavClear,
}

func initFav() {
	favSetCmd.Flags().Bool("no-check", false, "store the path without resolving it")
	favCmd.AddCommand(favSetCmd, favClearCmd)
}

func parseSlot(s string) (int, error) {
	slot, err := strconv.Atoi(s)
	if err != nil {
		return 0, pathkit.NewPathError("fav", s, pathkit.ErrInvalidSlot)
	}
	return slot, nil
}

func doFavList(cmd *cobra.Command, args []string) error {
	root := favorites.New(current.registry.Env())
	items, err := root.Items(commandContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, root.Name())
	for _, item := range items {
		slot, _ := item.Size()
		fmt.Fprintf(out, "  %d  %s\n", slot, item.Path())
	}
	return nil
}

func doFavSet(cmd *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}

	target := args[1]
	if noCheck, _ := cmd.Flags().GetBool("no-check"); !noCheck {
		p, err := current.resolve(target)
		if err != nil {
			return err
		}
		target = p.Path()
	}
	return favorites.Assign(current.prefs, slot, target)
}

func doFavClear(cmd *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	return favorites.Assign(current.prefs, slot, "")
}
