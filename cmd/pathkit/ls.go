package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gobeaver/pathkit"
	"github.com/gobeaver/pathkit/driver/favorites"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:     "ls [path]",
	Aliases: []string{"list"},
	Short:   "list the children of a path",
	Example: "pathkit ls zip:///tmp/backup.zip/docs/ --filter '*.md'",
	Args:    cobra.MaximumNArgs(1),
	RunE:    doLs,
}

func initLs() {
	lsCmd.Flags().StringP("filter", "f", "", "glob pattern matched against names")
	lsCmd.Flags().BoolP("long", "l", false, "show size and modification time")
}

func doLs(cmd *cobra.Command, args []string) error {
	arg := "."
	if len(args) > 0 {
		arg = args[0]
	}

	p, err := current.resolve(arg)
	if err != nil {
		return err
	}
	if err := require(p, pathkit.FeatureChildren); err != nil {
		return err
	}

	items, err := p.Items(commandContext(cmd))
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("filter")
	if items, err = pathkit.Filter(items, filter); err != nil {
		return fmt.Errorf("invalid filter %q: %w", filter, err)
	}
	pathkit.SortItems(items)

	long, _ := cmd.Flags().GetBool("long")
	return printItems(cmd.OutOrStdout(), current.registry.Env(), items, long)
}

func printItems(out io.Writer, env *pathkit.Env, items []pathkit.Path, long bool) error {
	if !long {
		for _, item := range items {
			if _, err := fmt.Fprintln(out, displayName(item)); err != nil {
				return err
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		size := ""
		if slot, ok := item.(*favorites.Slot); ok {
			// favorites carry their slot index, not a byte count
			size = fmt.Sprintf("#%d", slot.Index())
		} else if s, ok := item.Size(); ok {
			size = env.FormatSize(s)
		}
		modified := ""
		if t, ok := item.ModTime(); ok {
			modified = humanize.Time(t)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", size, modified, displayName(item))
	}
	return w.Flush()
}

// displayName marks containers with a trailing slash.
func displayName(p pathkit.Path) string {
	if p.Supports(pathkit.FeatureChildren) {
		return p.Name() + "/"
	}
	return p.Name()
}
