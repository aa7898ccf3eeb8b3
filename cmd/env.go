package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/config"
	"github.com/sells-group/asselect/internal/fetcher"
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/store"
	"github.com/sells-group/asselect/internal/yaixm"
)

// initStore opens and migrates the configured store.
func initStore(ctx context.Context, c *config.Config) (store.Store, error) {
	return store.Open(ctx, c.Store.Driver, c.Store.DatabaseURL)
}

// newOpener builds a dataset opener from the dataset config.
func newOpener(c *config.Config) *fetcher.Opener {
	return fetcher.NewOpener(fetcher.Options{
		HTTP: fetcher.HTTPOptions{
			UserAgent:  c.Dataset.UserAgent,
			Timeout:    c.Dataset.Timeout(),
			MaxRetries: c.Dataset.MaxRetries,
		},
		FTP: fetcher.FTPOptions{
			Timeout: c.Dataset.Timeout(),
		},
	})
}

// datasetSource returns the flag value when set, else the configured source.
func datasetSource(c *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return c.Dataset.Source
}

// loadDataset reads and validates the dataset at source.
func loadDataset(ctx context.Context, c *config.Config, source string) (*yaixm.Dataset, error) {
	ds, err := yaixm.Load(ctx, newOpener(c), source)
	if err != nil {
		return nil, err
	}
	zap.L().Info("dataset loaded",
		zap.String("source", source),
		zap.String("airac", ds.Release.AIRACDate),
		zap.Int("features", len(ds.Airspace)),
	)
	return ds, nil
}

// resolveSettings picks the settings for a conversion. An explicit settings
// file must exist; the configured default file is optional and falls back
// to the built-in defaults.
func resolveSettings(c *config.Config, explicit string) (settings.Settings, error) {
	if explicit != "" {
		return settings.Load(explicit)
	}

	if _, err := os.Stat(c.Settings.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings.Default(), nil
		}
		return settings.Settings{}, eris.Wrapf(err, "stat %s", c.Settings.Path)
	}
	return settings.Load(c.Settings.Path)
}
