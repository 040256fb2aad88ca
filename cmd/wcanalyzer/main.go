package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/repository/postgres"
	"github.com/andresuchdata/wcanalyzer/pkg/logger"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: required,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	dbURL := c.String("db-url")
	if dbURL == "" {
		return nil
	}

	sqlDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := sqlDB.PingContext(c.Context); err != nil {
		sqlDB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db := postgres.WrapSQL(sqlDB, "pgx", config.Load().Database.MaxConcurrency)
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db := dbFrom(c); db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *postgres.DB {
	db, _ := c.Context.Value(dbKey).(*postgres.DB)
	return db
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wcanalyzer",
		Usage: "Working-capital analytics: cycle metrics, benchmarks, scorecards and simulations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg := config.Load()
			logger.SetOutput(c.App.ErrWriter, cfg.Log.Format)
			level := cfg.Log.Level
			if c.IsSet("log-level") {
				level = c.String("log-level")
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Analyze one or more profiles from a file, or the demo company",
				Flags: []cli.Flag{
					newDBURLFlag(false),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Profile file (.json, .yaml, .csv)"},
					&cli.BoolFlag{Name: "demo", Usage: "Analyze the built-in demo company"},
					&cli.StringFlag{Name: "industry", Usage: "Override the profile industry"},
					&cli.StringFlag{Name: "session", Usage: "Session the analysis is recorded under"},
					&cli.BoolFlag{Name: "json", Usage: "Print the full analysis as JSON"},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAnalyze,
			},
			{
				Name:  "simulate",
				Usage: "Simulate new DSO/DIO/DPO targets for a profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Profile file; the first profile is used"},
					&cli.BoolFlag{Name: "demo", Usage: "Simulate on the built-in demo company"},
					&cli.Float64Flag{Name: "dso", Usage: "Target days sales outstanding"},
					&cli.Float64Flag{Name: "dio", Usage: "Target days inventory outstanding"},
					&cli.Float64Flag{Name: "dpo", Usage: "Target days payables outstanding"},
					&cli.StringFlag{Name: "csv", Usage: "Write the simulation CSV to this path"},
					&cli.BoolFlag{Name: "upload", Usage: "Archive the simulation CSV to report storage"},
				},
				Action: runSimulate,
			},
			{
				Name:  "batch",
				Usage: "Analyze every profile file in a directory",
				Flags: []cli.Flag{
					newDBURLFlag(false),
					&cli.StringFlag{Name: "dir", Usage: "Directory containing profile files", Required: true},
					&cli.IntFlag{Name: "workers", Usage: "Number of concurrent workers", EnvVars: []string{"BATCH_WORKERS"}},
					&cli.StringFlag{Name: "out", Usage: "Summary CSV path (- for stdout)", Value: "-"},
					&cli.StringFlag{Name: "session", Usage: "Session the analyses are recorded under", Value: "batch"},
				},
				Before: initDB,
				After:  closeDB,
				Action: runBatch,
			},
			{
				Name:   "migrate",
				Usage:  "Create the analysis history tables",
				Flags:  []cli.Flag{newDBURLFlag(true)},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:  "history",
				Usage: "List recorded analyses",
				Flags: []cli.Flag{
					newDBURLFlag(true),
					&cli.IntFlag{Name: "limit", Usage: "Maximum rows", Value: 20},
					&cli.StringFlag{Name: "industry", Usage: "Filter by industry"},
					&cli.StringFlag{Name: "session", Usage: "Filter by session"},
				},
				Before: initDB,
				After:  closeDB,
				Action: runHistory,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("wcanalyzer failed")
	}
}
