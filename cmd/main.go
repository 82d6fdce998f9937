package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gw-eternal-pay/docs"
	"gw-eternal-pay/internal/app"
	"gw-eternal-pay/internal/config"
	"gw-eternal-pay/internal/db"
	"gw-eternal-pay/pkg/logger"
)

// @title           Eternal Pay API
// @version         1.0
// @description     Учёт транзакций конвертации, кэш котировок BTC/BRL, BTC/USD, USD/BRL и генерация PIX BR Code

// @contact.name   API Support
// @contact.email  support@eternalpay.dev

// @host      localhost:8080
// @BasePath  /
func main() {
	rootCmd := &cobra.Command{
		Use:   "eternal-pay",
		Short: "Eternal Pay: транзакции, котировки и PIX",
		// без подкоманды запускается всё в одном процессе
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(true, true, true)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd("refresher", "Только обновление котировок", false, true, false))
	rootCmd.AddCommand(workerCmd("sweeper", "Только отмена просроченных pending-транзакций", false, false, true))
	rootCmd.AddCommand(notifierCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var noWorkers bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP API вместе с фоновыми циклами",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(true, !noWorkers, !noWorkers)
		},
	}
	cmd.Flags().BoolVar(&noWorkers, "no-workers", false, "не запускать обновление котировок и отмену просроченных транзакций")

	return cmd
}

func workerCmd(use, short string, httpAPI, refresher, sweeper bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(httpAPI, refresher, sweeper)
		},
	}
}

func runMode(httpAPI, refresher, sweeper bool) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	a, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("ошибка создания приложения: %w", err)
	}

	if httpAPI {
		if err := a.BuildHTTP(); err != nil {
			return err
		}
		if err := a.BuildTransactionLayer(); err != nil {
			return err
		}
		if err := a.BuildQuoteLayer(); err != nil {
			return err
		}
		if err := a.BuildPixLayer(); err != nil {
			return err
		}
	}
	if refresher {
		a.BuildRefresher()
	}
	if sweeper {
		a.BuildSweeper()
	}

	return a.Run()
}

func notifierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifier",
		Short: "Журнал событий об отмене просроченных транзакций из kafka",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			a, err := app.NewApp(cfg)
			if err != nil {
				return fmt.Errorf("ошибка создания приложения: %w", err)
			}
			if err := a.BuildNotifier(); err != nil {
				return err
			}
			return a.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции (или откатить --down N)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			lf, err := logger.NewLoggerWithFile(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer lf.LogFile.Close()
			log := lf.Logger

			var status db.MigrationStatus
			if down > 0 {
				log.Info("откат миграций", slog.Int("steps", down))
				status, err = db.RollbackMigrations(cfg.DB.MigrationURL(), cfg.DB.MigrationsPath, down)
			} else {
				log.Info("применение миграций", slog.String("path", cfg.DB.MigrationsPath))
				status, err = db.RunMigrations(cfg.DB.MigrationURL(), cfg.DB.MigrationsPath)
			}
			if err != nil {
				return err
			}

			log.Info("миграции выполнены", slog.Uint64("version", uint64(status.Version)))
			return nil
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "количество миграций для отката")

	return cmd
}
