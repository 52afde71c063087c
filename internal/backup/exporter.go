// Package backup copies catalog images and category icons out of the store.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/jewelcatalog/internal/categories"
	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
	"github.com/angelmondragon/jewelcatalog/pkg/metrics"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Source lists what gets exported. catalog.Service satisfies it.
type Source interface {
	GetJewelleryItems(ctx context.Context) ([]jewellery.Item, error)
	GetAllCategories(ctx context.Context) ([]categories.Category, error)
}

// ExporterParams groups dependencies for the exporter.
type ExporterParams struct {
	Source      Source
	Sink        Sink
	Concurrency int
	Metrics     *metrics.BackupMetrics
	Logger      *logger.Logger
}

// Report summarises one export run.
type Report struct {
	Success         bool     `json:"success"`
	DownloadedCount int      `json:"downloadedCount"`
	TotalItems      int      `json:"totalItems"`
	Errors          []string `json:"errors"`

	failures error
}

// Err combines every per-file failure, or returns nil.
func (r Report) Err() error {
	return r.failures
}

type Exporter struct {
	source      Source
	sink        Sink
	concurrency int
	metrics     *metrics.BackupMetrics
	logg        *logger.Logger
	now         func() time.Time
}

func NewExporter(params ExporterParams) (*Exporter, error) {
	if params.Source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "backup source is required")
	}
	if params.Sink == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "backup sink is required")
	}
	if params.Concurrency <= 0 {
		params.Concurrency = 1
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Exporter{
		source:      params.Source,
		sink:        params.Sink,
		concurrency: params.Concurrency,
		metrics:     params.Metrics,
		logg:        logg,
		now:         time.Now,
	}, nil
}

type job struct {
	kind    string
	label   string
	payload string
	name    func(data []byte) string
}

type outcome struct {
	written bool
	err     error
}

// Export writes every data-uri or file-referenced image to the sink. Records are
// never modified. A failing file is reported by name and does not stop the run.
func (e *Exporter) Export(ctx context.Context) (Report, error) {
	start := e.now()
	defer func() { e.metrics.ObserveDuration(e.now().Sub(start)) }()

	items, err := e.source.GetJewelleryItems(ctx)
	if err != nil {
		return Report{}, err
	}
	cats, err := e.source.GetAllCategories(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Errors: []string{}, TotalItems: len(items)}
	var jobs []job
	for _, item := range items {
		if !exportable(item.Image) {
			continue
		}
		id := item.ImgID
		if id == "" {
			id = item.ID
		}
		name := item.Name
		jobs = append(jobs, job{
			kind:    metrics.BackupKindItem,
			label:   name,
			payload: item.Image,
			name:    func(data []byte) string { return itemFileName(id, name, data) },
		})
	}
	for _, c := range cats {
		if c.IsDefault {
			continue
		}
		report.TotalItems++
		if !exportable(c.Icon) {
			continue
		}
		name := c.Name
		jobs = append(jobs, job{
			kind:    metrics.BackupKindCategory,
			label:   name + " (icon)",
			payload: c.Icon,
			name:    func(data []byte) string { return categoryFileName(name, data) },
		})
	}

	outcomes := make([]outcome, len(jobs))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			err := e.run(ctx, j)
			outcomes[i] = outcome{written: err == nil, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if o.written {
			report.DownloadedCount++
			e.metrics.IncWritten(jobs[i].kind)
			continue
		}
		report.Errors = append(report.Errors, jobs[i].label)
		report.failures = multierr.Append(report.failures, fmt.Errorf("%s: %w", jobs[i].label, o.err))
		e.metrics.IncFailed(jobs[i].kind)
		e.logg.WarnErr(e.logg.WithField(ctx, "file", jobs[i].label), "exporting image failed", o.err)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	report.Success = true
	e.logg.Info(e.logg.WithFields(ctx, map[string]any{
		"downloaded": report.DownloadedCount,
		"total":      report.TotalItems,
		"failed":     len(report.Errors),
	}), "catalog export finished")
	return report, nil
}

func (e *Exporter) run(ctx context.Context, j job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := readPayload(j.payload)
	if err != nil {
		return err
	}
	return e.sink.WriteFile(ctx, j.name(data), data)
}
