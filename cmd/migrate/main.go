package main

import (
	"github.com/dazos/cfo-copilot-api/infrastructure/migration"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/sirupsen/logrus"
)

// Aplica as migrações e sai. Útil em pipelines de deploy onde o banco é
// migrado antes de subir a API.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := migration.Run(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}
}
