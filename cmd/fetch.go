package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/config"
	"github.com/sells-group/asselect/internal/yaixm"
)

var (
	fetchDataset string
	fetchOutput  string
	fetchForce   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a dataset to a local file",
	Long:  "Downloads the dataset and checks that it parses. The file is only rewritten when the source has changed since the last fetch.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		return runFetch(cmd.Context(), cfg, fetchDataset, fetchOutput, fetchForce, os.Stderr)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDataset, "dataset", "", "dataset URL (default from config)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "yaixm.json", "destination file")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "download even if unchanged")
	rootCmd.AddCommand(fetchCmd)
}

// etagPath is where the ETag of the last download of path is kept.
func etagPath(path string) string { return path + ".etag" }

func runFetch(ctx context.Context, c *config.Config, dataset, path string, force bool, status io.Writer) error {
	source := datasetSource(c, dataset)
	if source == path {
		return eris.Errorf("fetch: source and destination are both %s", path)
	}

	if force {
		n, err := newOpener(c).Fetch(ctx, source, path)
		if err != nil {
			return eris.Wrap(err, "fetch")
		}
		_ = os.Remove(etagPath(path))
		ds, err := yaixm.LoadFile(path)
		if err != nil {
			return eris.Wrap(err, "fetch: downloaded dataset is invalid")
		}
		fmt.Fprintf(status, "Wrote %s (%d bytes, AIRAC %s)\n", path, n, ds.Release.AIRACDate)
		return nil
	}

	var etag string
	if _, err := os.Stat(path); err == nil {
		if b, err := os.ReadFile(etagPath(path)); err == nil {
			etag = string(b)
		}
	}

	rc, newTag, changed, err := newOpener(c).OpenIfChanged(ctx, source, etag)
	if err != nil {
		return eris.Wrap(err, "fetch")
	}
	if !changed {
		fmt.Fprintf(status, "%s is up to date\n", path)
		return nil
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return eris.Wrap(err, "fetch: read")
	}
	ds, err := yaixm.Decode(bytes.NewReader(data))
	if err != nil {
		return eris.Wrap(err, "fetch: downloaded dataset is invalid")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "fetch: write %s", path)
	}
	if newTag != "" {
		if err := os.WriteFile(etagPath(path), []byte(newTag), 0o644); err != nil {
			zap.L().Warn("fetch: could not save etag", zap.Error(err))
		}
	}

	fmt.Fprintf(status, "Wrote %s (%d bytes, AIRAC %s)\n", path, len(data), ds.Release.AIRACDate)
	return nil
}
