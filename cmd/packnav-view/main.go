// Command packnav-view opens a tree in a desktop window.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/internal/cli"
	"github.com/matzehuels/packnav/internal/viewer"
	"github.com/matzehuels/packnav/pkg/buildinfo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:          "packnav-view [tree]",
		Short:        "Open a circle-pack tree in a window",
		Long:         `packnav-view draws the navigator in a desktop window. Click a circle to zoom in, right-click or press backspace to zoom out, O opens another tree and Q quits.`,
		Version:      buildinfo.Version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cli.New(os.Stderr, cli.LogInfo)
			if verbose {
				c.SetLogLevel(cli.LogDebug)
			}
			if err := c.LoadConfig(configPath); err != nil {
				return err
			}

			fetcher, closeFetcher, err := c.NewFetcher(noCache)
			if err != nil {
				return err
			}
			defer closeFetcher()

			ctx := cmd.Context()
			tree, err := cli.LoadTree(ctx, fetcher, args[0])
			if err != nil {
				return err
			}
			v, err := viewer.New(ctx, tree,
				viewer.WithConfig(c.Config),
				viewer.WithFetcher(fetcher),
				viewer.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			c.Logger.Debug("opening window", "tree", args[0], "nodes", tree.Count(), "size", v.Size())
			return v.Run(tree.Name)
		},
	}
	cmd.SetVersionTemplate(buildinfo.Template())
	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP payload cache")
	return cmd
}
