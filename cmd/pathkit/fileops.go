package main

import (
	"io"

	"github.com/gobeaver/pathkit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mkdirCmd = &cobra.Command{
	Use:     "mkdir [path]",
	Short:   "create a directory (or an empty file with --file)",
	Example: "pathkit mkdir zip:///tmp/backup.zip/new-folder",
	Args:    cobra.ExactArgs(1),
	RunE:    doMkdir,
}

var rmCmd = &cobra.Command{
	Use:     "rm [path]",
	Aliases: []string{"delete"},
	Short:   "delete a path",
	Long:    "Deletes a path. Local directories are removed with their content; archive entries are removed one at a time.",
	Args:    cobra.ExactArgs(1),
	RunE:    doRm,
}

var cpCmd = &cobra.Command{
	Use:     "cp [source] [target]",
	Aliases: []string{"copy"},
	Short:   "copy a file; a directory target receives the file under its own name",
	Example: "pathkit cp ./notes.txt zip:///tmp/backup.zip/docs/",
	Args:    cobra.ExactArgs(2),
	RunE:    doCp,
}

var catCmd = &cobra.Command{
	Use:   "cat [path]",
	Short: "write the content of a file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  doCat,
}

func initFileOps() {
	mkdirCmd.Flags().Bool("file", false, "create an empty file instead of a directory")
}

func doMkdir(cmd *cobra.Command, args []string) error {
	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}
	if err := require(p, pathkit.FeatureCreate); err != nil {
		return err
	}
	creator, ok := p.(pathkit.Creator)
	if !ok {
		return pathkit.NewPathError("create", p.Path(), pathkit.ErrNotSupported)
	}

	asFile, _ := cmd.Flags().GetBool("file")
	return creator.Create(commandContext(cmd), !asFile)
}

func doRm(cmd *cobra.Command, args []string) error {
	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}
	if err := require(p, pathkit.FeatureDelete); err != nil {
		return err
	}
	deleter, ok := p.(pathkit.Deleter)
	if !ok {
		return pathkit.NewPathError("delete", p.Path(), pathkit.ErrNotSupported)
	}

	if err := deleter.Delete(commandContext(cmd)); err != nil {
		return err
	}
	current.log.Info("deleted", zap.String("path", p.Path()))
	return nil
}

func doCp(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	src, err := current.resolve(args[0])
	if err != nil {
		return err
	}
	if src.Supports(pathkit.FeatureChildren) {
		return pathkit.NewPathError("copy", src.Path(), pathkit.ErrIsDir)
	}

	dst, err := current.resolve(args[1])
	if err != nil {
		return err
	}
	if dst.Supports(pathkit.FeatureChildren) {
		if exists, err := dst.Exists(ctx); err != nil {
			return err
		} else if exists {
			appender, ok := dst.(pathkit.Appender)
			if !ok {
				return pathkit.NewPathError("copy", dst.Path(), pathkit.ErrNotSupported)
			}
			dst = appender.Append(src.Name())
		}
	}

	if err := require(dst, pathkit.FeatureCopy); err != nil {
		return err
	}
	target, ok := dst.(pathkit.CopyTarget)
	if !ok {
		return pathkit.NewPathError("copy", dst.Path(), pathkit.ErrNotSupported)
	}

	if err := target.CreateFrom(ctx, src); err != nil {
		return err
	}
	current.log.Info("copied", zap.String("from", src.Path()), zap.String("to", dst.Path()))
	return nil
}

func doCat(cmd *cobra.Command, args []string) error {
	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}
	opener, ok := p.(pathkit.Opener)
	if !ok || p.Supports(pathkit.FeatureChildren) {
		return pathkit.NewPathError("cat", p.Path(), pathkit.ErrNotSupported)
	}

	rc, err := opener.Open(commandContext(cmd))
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(cmd.OutOrStdout(), rc)
	return err
}
