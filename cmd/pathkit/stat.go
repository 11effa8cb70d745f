package main

import (
	"fmt"
	"strings"

	"github.com/gobeaver/pathkit"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:     "stat [path]",
	Aliases: []string{"info"},
	Short:   "show details and capabilities of a path",
	Example: "pathkit stat zip:///tmp/backup.zip/docs/readme.md --checksum sha256,xxhash",
	Args:    cobra.ExactArgs(1),
	RunE:    doStat,
}

func initStat() {
	statCmd.Flags().String("checksum", "", "comma separated checksum algorithms [md5,sha1,sha256,sha512,crc32,xxhash]; empty uses the configured one")
	statCmd.Flags().Bool("no-checksum", false, "skip the checksum")
}

func doStat(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	p, err := current.resolve(args[0])
	if err != nil {
		return err
	}

	exists, err := p.Exists(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path:      %s\n", p.Path())
	fmt.Fprintf(out, "name:      %s\n", p.Name())
	fmt.Fprintf(out, "exists:    %v\n", exists)
	if d, ok := p.(pathkit.Describer); ok {
		fmt.Fprintf(out, "desc:      %s\n", d.Description())
	}
	if !p.Supports(pathkit.FeatureChildren) {
		fmt.Fprintf(out, "type:      %s\n", pathkit.ContentType(p.Name()))
	}
	fmt.Fprintf(out, "icon:      %s\n", p.Icon())
	if size, ok := p.Size(); ok {
		fmt.Fprintf(out, "size:      %d (%s)\n", size, current.registry.Env().FormatSize(size))
	}
	if t, ok := p.ModTime(); ok {
		fmt.Fprintf(out, "modified:  %s\n", t.Format("2006-01-02 15:04:05"))
	}
	if parent, err := p.Parent(); err == nil && parent != nil {
		fmt.Fprintf(out, "parent:    %s\n", parent.Path())
	}

	var supported []string
	for _, f := range pathkit.Features() {
		if p.Supports(f) {
			supported = append(supported, f.String())
		}
	}
	fmt.Fprintf(out, "supports:  %s\n", strings.Join(supported, ","))

	if skip, _ := cmd.Flags().GetBool("no-checksum"); skip || !exists || p.Supports(pathkit.FeatureChildren) {
		return nil
	}
	if _, ok := p.(pathkit.Opener); !ok {
		return nil
	}

	list, _ := cmd.Flags().GetString("checksum")
	if list == "" {
		list = current.conf.ChecksumAlgorithm
	}
	var algs []pathkit.ChecksumAlgorithm
	for _, a := range strings.Split(list, ",") {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			algs = append(algs, pathkit.ChecksumAlgorithm(a))
		}
	}
	sums, err := pathkit.Checksums(ctx, p, algs...)
	if err != nil {
		return err
	}
	printed := map[pathkit.ChecksumAlgorithm]bool{}
	for _, alg := range algs {
		if printed[alg] {
			continue
		}
		printed[alg] = true
		fmt.Fprintf(out, "%-10s %s\n", string(alg)+":", sums[alg])
	}
	return nil
}
