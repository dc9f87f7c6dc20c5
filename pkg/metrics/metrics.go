// Package metrics keeps lightweight operational gauges and counters in an
// embedded tstorage time-series store under the application workdir.
package metrics

import (
	"path"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
)

var (
	storageOnce sync.Once
	storage     tstorage.Storage

	counterMu sync.Mutex
	counters  = map[string]int64{}
)

// InitMetrics opens the metrics store under workdir/data/metrics.
func InitMetrics(workdir string) error {
	var err error
	storageOnce.Do(func() {
		storage, err = tstorage.NewStorage(
			tstorage.WithDataPath(path.Join(workdir, "data", "metrics")),
			tstorage.WithTimestampPrecision(tstorage.Seconds),
			tstorage.WithRetention(30*24*time.Hour),
		)
	})
	return errors.Wrap(err, "init metrics storage")
}

// SetGauge records the current value of a gauge metric.
func SetGauge(name string, value int64) {
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
		},
	})
}

// IncrCounter bumps a monotonically increasing counter and records the new
// total as a data point.
func IncrCounter(name string, delta int64) {
	counterMu.Lock()
	counters[name] += delta
	total := counters[name]
	counterMu.Unlock()
	SetGauge(name, total)
}

// Select returns the stored points of a metric within [start, end].
func Select(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	if storage == nil {
		return nil, errors.New("metrics storage not initialized")
	}
	points, err := storage.Select(name, nil, start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "select metric %s", name)
	}
	return points, nil
}

// Close flushes and closes the metrics store.
func Close() error {
	if storage == nil {
		return nil
	}
	return storage.Close()
}
