package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/asselect/internal/config"
	"github.com/sells-group/asselect/internal/yaixm"
)

var listDataset string

var listCmd = &cobra.Command{
	Use:       "list {" + strings.Join(yaixm.NameKinds, "|") + "}",
	Short:     "List selectable LOAs, RATs, wave boxes or gliding sites",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: yaixm.NameKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("list"); err != nil {
			return err
		}
		return runList(cmd.Context(), cfg, listDataset, args[0], os.Stdout)
	},
}

func init() {
	listCmd.Flags().StringVar(&listDataset, "dataset", "", "dataset file or URL (default from config)")
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context, c *config.Config, dataset, kind string, out io.Writer) error {
	ds, err := loadDataset(ctx, c, datasetSource(c, dataset))
	if err != nil {
		return err
	}
	names, err := yaixm.Names(ds, kind)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}
