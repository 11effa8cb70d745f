package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/gobeaver/pathkit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var openCmd = &cobra.Command{
	Use:     "open [path]",
	Short:   "activate a path the way a panel would and list where it leads",
	Long:    "Directories are entered, archives (zip, jar, xpi) are opened as directories and favorites jump to their target.",
	Example: "pathkit open fav:// && pathkit open ./bundle.jar",
	Args:    cobra.ExactArgs(1),
	RunE:    doOpen,
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "list a path again every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  doWatch,
}

func initOpen() {
	openCmd.Flags().BoolP("long", "l", false, "show size and modification time")
}

func initWatch() {
	watchCmd.Flags().StringP("filter", "f", "", "glob pattern of names to watch")
}

// listingNavigator prints the items of every node it is pointed at.
type listingNavigator struct {
	ctx  context.Context
	out  io.Writer
	env  *pathkit.Env
	long bool
}

func (n *listingNavigator) Navigate(p pathkit.Path) error {
	fmt.Fprintf(n.out, "%s:\n", p.Path())

	items, err := p.Items(n.ctx)
	if err != nil {
		return err
	}
	pathkit.SortItems(items)
	return printItems(n.out, n.env, items, n.long)
}

func doOpen(cmd *cobra.Command, args []string) error {
	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}

	long, _ := cmd.Flags().GetBool("long")
	nav := &listingNavigator{
		ctx:  commandContext(cmd),
		out:  cmd.OutOrStdout(),
		env:  current.registry.Env(),
		long: long,
	}
	return pathkit.Activate(nav.ctx, current.registry, p, nav)
}

func doWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}
	watcher, ok := p.(pathkit.Watcher)
	if !ok {
		return pathkit.NewPathError("watch", p.Path(), pathkit.ErrNotSupported)
	}

	filter, _ := cmd.Flags().GetString("filter")
	nav := &listingNavigator{ctx: ctx, out: cmd.OutOrStdout(), env: current.registry.Env()}

	show := func() {
		target := p
		if !p.Supports(pathkit.FeatureChildren) {
			if parent, err := p.Parent(); err == nil && parent != nil {
				target = parent
			}
		}
		if err := nav.Navigate(target); err != nil {
			current.log.Warn("cannot list", zap.String("path", target.Path()), zap.Error(err))
		}
	}
	show()

	cancel := pathkit.OnChange(func() (pathkit.ChangeToken, error) {
		token, err := watcher.Watch(ctx, filter)
		if err != nil {
			current.log.Error("cannot watch", zap.String("path", p.Path()), zap.Error(err))
		}
		return token, err
	}, show)
	defer cancel()

	<-ctx.Done()
	return nil
}
