package pipeline

import (
	"fmt"
	"time"

	"github.com/drakos74/noisy-clusters/internal/dataset"
	coinmath "github.com/drakos74/noisy-clusters/internal/math"
	"github.com/drakos74/noisy-clusters/internal/math/ml"
	"github.com/drakos74/noisy-clusters/internal/metrics"
	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/drakos74/noisy-clusters/internal/plot"
	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/drakos74/noisy-clusters/internal/storage/file/csv"
	"github.com/drakos74/noisy-clusters/internal/storage/file/json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ReportKey is the storage key of the run report.
var ReportKey = storage.Key{
	Name:  "clusters",
	Label: "summary",
}

// Option configures a pipeline.
type Option func(p *Pipeline)

// WithSource sets the random source shared by the generator and the clustering engine.
func WithSource(src rand.Source) Option {
	return func(p *Pipeline) {
		p.src = src
	}
}

// WithStorage sets the storage for the run report.
func WithStorage(store storage.Persistence) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithShard sets the storage shard the run report is kept in.
func WithShard(shard storage.Shard) Option {
	return func(p *Pipeline) {
		p.shard = shard
	}
}

// WithMetrics sets the metrics the run reports to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// Pipeline generates, clusters, exports and plots one dataset.
type Pipeline struct {
	cfg     Config
	src     rand.Source
	shard   storage.Shard
	store   storage.Persistence
	metrics *metrics.Metrics
}

// Result is the outcome of a successful run.
type Result struct {
	ID      string        `json:"id"`
	Rows    model.Labeled `json:"-"`
	Summary ml.Metadata   `json:"summary"`
}

// Report is the document stored for every run.
type Report struct {
	ID      string              `json:"id"`
	Time    time.Time           `json:"time"`
	Engine  string              `json:"engine"`
	Seed    uint64              `json:"seed"`
	Specs   []model.ClusterSpec `json:"specs"`
	Summary ml.Metadata         `json:"summary"`
	Table   string              `json:"table"`
	Image   string              `json:"image"`
}

// New creates a new pipeline for the given config.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.src == nil {
		p.src = coinmath.NewSource(cfg.Seed)
	}
	if p.store == nil && p.shard == nil && cfg.Report != "" {
		p.shard = json.BlobShard(cfg.Report)
	}
	if p.store == nil {
		if p.shard == nil {
			p.store = storage.NewVoidStorage()
		} else {
			store, err := p.shard(storage.RunsDir)
			if err != nil {
				return nil, fmt.Errorf("could not create report storage: %w", err)
			}
			p.store = store
		}
	}
	if p.metrics == nil {
		p.metrics = metrics.New()
	}
	return p, nil
}

// Run executes all stages in order. Any error aborts the run.
func (p *Pipeline) Run() (Result, error) {
	id := uuid.New().String()
	start := time.Now()

	result, err := p.run(id)
	if err != nil {
		p.metrics.Run("failure")
		log.Error().Err(err).Str("id", id).Msg("pipeline failed")
	} else {
		p.metrics.Run("success")
		log.Info().
			Str("id", id).
			Int("rows", len(result.Rows)).
			Float64("purity", result.Summary.Purity).
			Dur("duration", time.Since(start)).
			Msg("pipeline completed")
	}

	if p.cfg.Metrics != "" {
		if mErr := p.metrics.WriteTo(p.cfg.Metrics); mErr != nil {
			log.Warn().Err(mErr).Str("path", p.cfg.Metrics).Msg("could not write metrics")
			if err == nil {
				return result, mErr
			}
		}
	}
	return result, err
}

func (p *Pipeline) run(id string) (Result, error) {
	result := Result{ID: id}

	start := time.Now()
	gen := coinmath.NewGenerator(p.src, p.cfg.Noise)
	ds, err := dataset.Assemble(gen, p.cfg.Specs)
	if err != nil {
		return result, fmt.Errorf("generate: %w", err)
	}
	p.metrics.Samples(len(ds))
	p.metrics.Stage("generate", start)

	start = time.Now()
	engine := p.clusterer()
	labels, err := engine.Fit(ds.Noisy())
	if err != nil {
		return result, fmt.Errorf("fit: %w", err)
	}
	rows, err := dataset.Label(ds, labels)
	if err != nil {
		return result, fmt.Errorf("label: %w", err)
	}
	p.metrics.Stage("fit", start)

	summary, err := ml.Summarize(rows.Noisy(), rows.Labels(), p.cfg.K)
	if err != nil {
		return result, fmt.Errorf("summarize: %v: %w", err, dataset.TableConstructionErr)
	}
	summary.Purity = ml.Purity(dataset.Origins(p.cfg.Specs), rows.Labels())
	if f, ok := engine.(fitted); ok {
		summary.Inertia = f.Inertia()
		summary.Iterations = f.Iterations()
	}
	sizes := make(map[int]int, len(summary.Clusters))
	for label, c := range summary.Clusters {
		sizes[label] = c.Size
		log.Info().
			Str("id", id).
			Int("cluster", label).
			Int("size", c.Size).
			Str("mean", c.Mean.String()).
			Str("std-dev", c.StDev.String()).
			Msg("cluster")
	}
	p.metrics.Fit(summary.Inertia, summary.Iterations, sizes)

	result.Rows = rows
	result.Summary = summary

	start = time.Now()
	if err := csv.Write(p.cfg.Table, rows); err != nil {
		return result, fmt.Errorf("export: %w", err)
	}
	p.metrics.Stage("export", start)

	start = time.Now()
	if err := plot.Render(p.cfg.Image, rows, p.cfg.Plot); err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	p.metrics.Stage("render", start)

	report := Report{
		ID:      id,
		Time:    time.Now(),
		Engine:  p.cfg.Engine,
		Seed:    p.cfg.Seed,
		Specs:   p.cfg.Specs,
		Summary: summary,
		Table:   p.cfg.Table,
		Image:   p.cfg.Image,
	}
	if err := p.store.Store(ReportKey, report); err != nil {
		return result, fmt.Errorf("report: %w", err)
	}

	return result, nil
}

type fitted interface {
	Inertia() float64
	Iterations() int
}

func (p *Pipeline) clusterer() ml.Clusterer {
	switch p.cfg.Engine {
	case GomlEngine:
		return ml.NewGomlKMeans(p.cfg.K, p.cfg.Iterations)
	default:
		return ml.NewKMeans(p.cfg.K,
			ml.WithSource(p.src),
			ml.WithRuns(p.cfg.Runs),
			ml.WithIterations(p.cfg.Iterations),
			ml.WithTolerance(p.cfg.Tolerance),
		)
	}
}
