package pipeline

import (
	"fmt"

	"github.com/drakos74/noisy-clusters/infra/config"
	coinmath "github.com/drakos74/noisy-clusters/internal/math"
	"github.com/drakos74/noisy-clusters/internal/math/ml"
	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/drakos74/noisy-clusters/internal/plot"
	"github.com/drakos74/noisy-clusters/internal/storage"
)

const (
	ConfigKey = "pipeline"

	LloydEngine = "lloyd"
	GomlEngine  = "goml"
)

// Config holds every parameter of a pipeline run.
type Config struct {
	Specs      []model.ClusterSpec `json:"specs"`
	Noise      float64             `json:"noise"`
	K          int                 `json:"k"`
	Engine     string              `json:"engine"`
	Runs       int                 `json:"runs"`
	Iterations int                 `json:"iterations"`
	Tolerance  float64             `json:"tolerance"`

	// Seed fixes the random source, 0 means a time seeded one.
	Seed uint64 `json:"seed"`

	Table   string       `json:"table"`
	Image   string       `json:"image"`
	Plot    plot.Options `json:"plot"`
	Report  string       `json:"report"`
	Metrics string       `json:"metrics"`
}

// DefaultConfig returns the reference configuration of three blobs and k=3.
func DefaultConfig() Config {
	return Config{
		Specs: []model.ClusterSpec{
			{Center: model.Point{X: 2, Y: 2}, StdDev: 0.3, Count: 50},
			{Center: model.Point{X: 7, Y: 7}, StdDev: 0.3, Count: 50},
			{Center: model.Point{X: 2, Y: 7}, StdDev: 0.3, Count: 50},
		},
		Noise:      coinmath.DefaultNoise,
		K:          3,
		Engine:     LloydEngine,
		Runs:       ml.DefaultRuns,
		Iterations: ml.DefaultIterations,
		Tolerance:  ml.DefaultTolerance,
		Table:      "final_clustered.csv",
		Image:      "clusters.png",
		Plot:       plot.DefaultOptions(),
		Report:     storage.DefaultDir,
		Metrics:    "clusters.prom",
	}
}

// LoadConfig overlays the config file, if there is one, on the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := config.Load(ConfigKey, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, cfg.Validate()
}

// Validate checks the parameters the pipeline can not run without.
// Distribution and clustering parameters are left to the components.
func (c Config) Validate() error {
	switch c.Engine {
	case LloydEngine, GomlEngine:
	default:
		return fmt.Errorf("unknown engine '%s': %w", c.Engine, config.InvalidErr)
	}
	if c.Table == "" {
		return fmt.Errorf("missing table path: %w", config.InvalidErr)
	}
	if c.Image == "" {
		return fmt.Errorf("missing image path: %w", config.InvalidErr)
	}
	return nil
}
