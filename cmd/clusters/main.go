package main

import (
	"errors"

	"github.com/drakos74/noisy-clusters/infra/config"
	"github.com/drakos74/noisy-clusters/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfg, err := pipeline.LoadConfig()
	if err != nil {
		if !errors.Is(err, config.NotFoundErr) {
			log.Fatal().Err(err).Msg("could not load config")
		}
		log.Info().Msg("no config file, using the reference configuration")
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create pipeline")
	}

	result, err := p.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("could not complete pipeline")
	}

	log.Info().
		Str("id", result.ID).
		Str("table", cfg.Table).
		Str("image", cfg.Image).
		Msg("saved clustered table and plot")
}
