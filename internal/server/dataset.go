package server

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/fetcher"
	"github.com/sells-group/asselect/internal/resilience"
	"github.com/sells-group/asselect/internal/yaixm"
)

type datasetEntry struct {
	ds   *yaixm.Dataset
	etag string
}

// datasetCache serves a parsed dataset per source. Entries never expire;
// a separate freshness marker expires after the TTL, after which the next
// lookup revalidates the source with the stored ETag.
type datasetCache struct {
	opener   *fetcher.Opener
	breakers *resilience.Breakers
	metrics  *Metrics
	ttl      time.Duration

	mu    sync.Mutex
	cache *cache.Cache
}

func newDatasetCache(o *fetcher.Opener, m *Metrics, ttl time.Duration) *datasetCache {
	return &datasetCache{
		opener:   o,
		breakers: resilience.NewBreakers(resilience.Config{}),
		metrics:  m,
		ttl:      ttl,
		cache:    cache.New(ttl, 2*ttl),
	}
}

func entryKey(source string) string { return "dataset:" + source }
func freshKey(source string) string { return "fresh:" + source }

// Get returns the dataset for source, loading or revalidating it when the
// freshness marker has expired. A failed refresh, including one that does
// not parse, keeps serving the cached copy until the next expiry.
func (c *datasetCache) Get(ctx context.Context, source string) (*yaixm.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var prev *datasetEntry
	if v, ok := c.cache.Get(entryKey(source)); ok {
		prev = v.(*datasetEntry)
	}
	if _, fresh := c.cache.Get(freshKey(source)); fresh && prev != nil {
		c.metrics.DatasetLoads.WithLabelValues("hit").Inc()
		return prev.ds, nil
	}

	etag := ""
	if prev != nil {
		etag = prev.etag
	}

	var (
		ds      *yaixm.Dataset
		newTag  string
		changed bool
	)
	err := c.breakers.Get(source).Execute(ctx, func(ctx context.Context) error {
		rc, tag, ok, err := c.opener.OpenIfChanged(ctx, source, etag)
		if err != nil {
			return err
		}
		newTag, changed = tag, ok
		if !changed {
			if prev == nil {
				return eris.Errorf("server: source %s reported unchanged with nothing cached", source)
			}
			return nil
		}
		defer rc.Close() //nolint:errcheck

		ds, err = yaixm.Decode(rc)
		return err
	})
	if err != nil {
		c.metrics.DatasetLoads.WithLabelValues("error").Inc()
		if prev != nil {
			zap.L().Warn("server: dataset refresh failed, serving cached copy",
				zap.String("source", source), zap.Error(err))
			c.cache.Set(freshKey(source), true, cache.DefaultExpiration)
			return prev.ds, nil
		}
		return nil, eris.Wrap(err, "server: load dataset")
	}

	if !changed {
		c.cache.Set(freshKey(source), true, cache.DefaultExpiration)
		c.metrics.DatasetLoads.WithLabelValues("unchanged").Inc()
		return prev.ds, nil
	}

	c.cache.Set(entryKey(source), &datasetEntry{ds: ds, etag: newTag}, cache.NoExpiration)
	c.cache.Set(freshKey(source), true, cache.DefaultExpiration)
	c.metrics.DatasetLoads.WithLabelValues("loaded").Inc()
	zap.L().Info("dataset loaded",
		zap.String("source", source),
		zap.String("airac", ds.Release.AIRACDate),
		zap.Int("features", len(ds.Airspace)),
	)
	return ds, nil
}
