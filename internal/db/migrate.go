package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type MigrationStatus struct {
	Version uint
	Dirty   bool
}

func newMigrator(dsn, migrationsPath string) (*migrate.Migrate, error) {
	if dsn == "" {
		return nil, errors.New("DSN для миграций не может быть пустым")
	}
	if migrationsPath == "" {
		return nil, errors.New("путь к файлам миграций не может быть пустым")
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}
	return m, nil
}

// RunMigrations применяет все миграции вверх.
func RunMigrations(dsn string, migrationsPath string) (MigrationStatus, error) {
	m, err := newMigrator(dsn, migrationsPath)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return MigrationStatus{}, fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}
	return version(m)
}

// RollbackMigrations откатывает steps последних миграций.
func RollbackMigrations(dsn string, migrationsPath string, steps int) (MigrationStatus, error) {
	if steps <= 0 {
		return MigrationStatus{}, fmt.Errorf("количество шагов отката должно быть положительным: %d", steps)
	}

	m, err := newMigrator(dsn, migrationsPath)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return MigrationStatus{}, fmt.Errorf("ошибка при откате миграций: %w", err)
	}
	return version(m)
}

func version(m *migrate.Migrate) (MigrationStatus, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("ошибка при проверке версии миграций: %w", err)
	}
	if dirty {
		return MigrationStatus{Version: v, Dirty: true}, fmt.Errorf("обнаружена 'грязная' миграция версии %d. Исправьте вручную", v)
	}
	return MigrationStatus{Version: v}, nil
}
