package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/config"
	"github.com/sells-group/asselect/internal/model"
	"github.com/sells-group/asselect/internal/openair"
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/store"
)

type convertOptions struct {
	Dataset  string
	Settings string
	Profile  string
	Output   string
	NoRecord bool
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a YAIXM dataset to an OpenAir file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("convert"); err != nil {
			return err
		}
		return runConvert(cmd.Context(), cfg, convertOpts, os.Stdout)
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertOpts.Dataset, "dataset", "", "dataset file or URL (default from config)")
	f.StringVar(&convertOpts.Settings, "settings", "", "settings YAML file (default from config)")
	f.StringVar(&convertOpts.Profile, "profile", "", "use a saved settings profile")
	f.StringVarP(&convertOpts.Output, "output", "o", "", "output file, - for stdout (default from config)")
	f.BoolVar(&convertOpts.NoRecord, "no-record", false, "do not record the run in the store")
	rootCmd.AddCommand(convertCmd)
}

// runConvert loads the dataset and settings, converts, writes the result
// and records the run. stdout receives the output when the path is "-".
func runConvert(ctx context.Context, c *config.Config, opts convertOptions, stdout io.Writer) error {
	var st store.Store
	if opts.Profile != "" || !opts.NoRecord {
		s, err := initStore(ctx, c)
		switch {
		case err != nil && opts.Profile != "":
			return err
		case err != nil:
			zap.L().Warn("convert: store unavailable, run not recorded", zap.Error(err))
		default:
			st = s
			defer st.Close() //nolint:errcheck
		}
	}

	var (
		set settings.Settings
		err error
	)
	if opts.Profile != "" {
		p, perr := st.GetProfile(ctx, opts.Profile)
		if perr != nil {
			return eris.Wrapf(perr, "convert: profile %q", opts.Profile)
		}
		set = p.Settings
	} else if set, err = resolveSettings(c, opts.Settings); err != nil {
		return err
	}

	source := datasetSource(c, opts.Dataset)
	ds, err := loadDataset(ctx, c, source)
	if err != nil {
		return err
	}

	run := &model.Run{
		ID:        uuid.NewString(),
		Profile:   opts.Profile,
		Source:    source,
		AIRAC:     ds.Release.AIRACDate,
		Format:    string(set.Options.Format),
		CreatedAt: time.Now().UTC(),
	}

	start := time.Now()
	out, convErr := openair.Convert(ds, set)
	if convErr == nil {
		convErr = writeOutput(outputPath(c, opts.Output), out.Text, stdout)
	}
	if convErr != nil {
		run.Fail(convErr, time.Since(start))
	} else {
		run.Complete(out, time.Since(start))
	}

	if st != nil && !opts.NoRecord {
		if err := st.CreateRun(ctx, run); err != nil {
			zap.L().Warn("convert: record run failed", zap.Error(err))
		}
	}

	if convErr != nil {
		return eris.Wrap(convErr, "convert")
	}

	zap.L().Info("conversion complete",
		zap.String("run_id", run.ID),
		zap.Int("volumes", out.Volumes),
		zap.Int("excluded", out.Excluded),
		zap.Int("obstacles", out.Obstacles),
		zap.Int64("duration_ms", run.DurationMS),
	)
	return nil
}

func outputPath(c *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return c.Output.Path
}

func writeOutput(path, text string, stdout io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(stdout, text)
		return eris.Wrap(err, "write output")
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
