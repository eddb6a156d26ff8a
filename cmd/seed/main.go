// seed carga los datos de demostración en el almacenamiento configurado (STORAGE_DRIVER).
//
// Uso: go run ./cmd/seed [-force]
// Sin -force no toca un estado que ya tenga catálogos o tenants.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/seed"
	"github.com/jhoicas/Catalogos-api/pkg/config"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "reemplazar el estado existente")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal().Msg("STORAGE_DRIVER=memory no persiste nada; use sqlite o postgres")
	}

	ctx := context.Background()
	persister, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer persister.Close()

	store := memory.NewStore(memory.WithPersister(persister), memory.WithLogger(log))
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}

	now := time.Now().UTC()
	if *force {
		_, err = store.Update(ctx, "seed.demo", func(s *entity.State) error {
			*s = *seed.Demo(now, cfg.Seed.GlobalTenants)
			return nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("escribir demo")
		}
	} else {
		loaded, err := seed.Load(ctx, store, now, cfg.Seed.GlobalTenants)
		if err != nil {
			log.Fatal().Err(err).Msg("escribir demo")
		}
		if !loaded {
			log.Info().Msg("el estado ya tiene datos; use -force para reemplazarlo")
			return
		}
	}
	log.Info().Uint64("version", store.Version()).Str("driver", cfg.DB.Driver).Msg("datos demo escritos")
}
