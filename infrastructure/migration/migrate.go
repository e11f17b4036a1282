package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Status descreve a versão atual do schema
type Status struct {
	Version uint
	Dirty   bool
	Applied bool
}

// Up aplica todas as migrações pendentes
func Up(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.L.Debug("Nenhuma migração pendente")
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, _, _ := m.Version()
	log.L.Infof("Schema migrado para a versão %d", version)

	return nil
}

// Down desfaz a quantidade de migrações informada
func Down(db *sql.DB, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("quantidade de passos inválida: %d", steps)
	}

	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao reverter migrações: %w", err)
	}

	return nil
}

func CurrentStatus(db *sql.DB) (*Status, error) {
	m, err := newMigrate(db)
	if err != nil {
		return nil, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao obter versão do schema: %w", err)
	}

	return &Status{Version: version, Dirty: dirty, Applied: true}, nil
}

// newMigrate não fecha a instância: fechar o driver fecharia o *sql.DB compartilhado
func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar driver de migração: %w", err)
	}

	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar migrações: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar instância de migração: %w", err)
	}

	return m, nil
}
