package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Import catalog data from CSV files",
		Commands: []*cli.Command{
			{
				Name:      "products",
				Usage:     "Import products from a CSV file",
				ArgsUsage: "<file.csv>",
				Flags:     []cli.Flag{newDBURLFlag()},
				Before:    initDB,
				After:     closeDB,
				Action:    seedProducts,
			},
			{
				Name:      "audits",
				Usage:     "Import quality audit results from a CSV file",
				ArgsUsage: "<file.csv>",
				Flags:     []cli.Flag{newDBURLFlag()},
				Before:    initDB,
				After:     closeDB,
				Action:    seedAudits,
			},
			{
				Name:      "price-rules",
				Usage:     "Import pricing rules from a CSV file",
				ArgsUsage: "<file.csv>",
				Flags:     []cli.Flag{newDBURLFlag()},
				Before:    initDB,
				After:     closeDB,
				Action:    seedPriceRules,
			},
			{
				Name:      "predictions",
				Usage:     "Import stock-out predictions from a CSV file",
				ArgsUsage: "<file.csv>",
				Flags:     []cli.Flag{newDBURLFlag()},
				Before:    initDB,
				After:     closeDB,
				Action:    seedPredictions,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
