package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Backup outcomes used as the "kind" label.
const (
	BackupKindItem     = "item"
	BackupKindCategory = "category"
)

// BackupMetrics records export runs and per-file results.
type BackupMetrics struct {
	duration prometheus.Histogram
	written  *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewBackupMetrics registers the backup metrics on the provided registerer.
func NewBackupMetrics(reg prometheus.Registerer) *BackupMetrics {
	if reg == nil {
		return &BackupMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "backup_duration_seconds",
		Help:    "Duration of catalog image exports in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	written := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backup_files_written_total",
		Help: "Images written by catalog exports.",
	}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backup_files_failed_total",
		Help: "Images that could not be exported.",
	}, []string{"kind"})
	reg.MustRegister(duration, written, failed)
	return &BackupMetrics{
		duration: duration,
		written:  written,
		failed:   failed,
	}
}

// ObserveDuration records the duration of one export run.
func (b *BackupMetrics) ObserveDuration(duration time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.Observe(duration.Seconds())
}

// IncWritten counts one exported file of the given kind.
func (b *BackupMetrics) IncWritten(kind string) {
	if b == nil || b.written == nil {
		return
	}
	b.written.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailed counts one file of the given kind that failed to export.
func (b *BackupMetrics) IncFailed(kind string) {
	if b == nil || b.failed == nil {
		return
	}
	b.failed.WithLabelValues(normalizeLabel(kind)).Inc()
}
