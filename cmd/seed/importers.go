package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// openCSV opens the file given as the first CLI argument and returns a
// reader positioned after the header row, plus the header itself.
func openCSV(c *cli.Context) (*csv.Reader, []string, func(), error) {
	if c.NArg() < 1 {
		return nil, nil, nil, fmt.Errorf("expected a CSV file argument")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", c.Args().First(), err)
	}

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	return reader, header, func() { f.Close() }, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func nullFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullInt(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func seedProducts(c *cli.Context) error {
	reader, header, closeFile, err := openCSV(c)
	if err != nil {
		return err
	}
	defer closeFile()

	idIdx := columnIndex(header, "id")
	nameIdx := columnIndex(header, "name")
	categoryIdx := columnIndex(header, "category")
	stockIdx := columnIndex(header, "stock_quantity")
	priceIdx := columnIndex(header, "price")
	costIdx := columnIndex(header, "cost_price")
	marginIdx := columnIndex(header, "profit_margin")
	if idIdx < 0 {
		return fmt.Errorf("products CSV must have an id column")
	}

	db := dbFrom(c)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		id := field(record, idIdx)
		if id == "" {
			continue
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO products (id, name, category, stock_quantity, price, cost_price, profit_margin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				stock_quantity = EXCLUDED.stock_quantity,
				price = EXCLUDED.price,
				cost_price = EXCLUDED.cost_price,
				profit_margin = EXCLUDED.profit_margin,
				updated_at = NOW()
		`,
			id,
			nullIfEmpty(field(record, nameIdx)),
			nullIfEmpty(field(record, categoryIdx)),
			nullInt(field(record, stockIdx)),
			nullFloat(field(record, priceIdx)),
			nullFloat(field(record, costIdx)),
			nullFloat(field(record, marginIdx)),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", id, err)
		}
		count++
	}

	log.Printf("imported %d products", count)
	return nil
}

func seedAudits(c *cli.Context) error {
	reader, header, closeFile, err := openCSV(c)
	if err != nil {
		return err
	}
	defer closeFile()

	productIdx := columnIndex(header, "product_id")
	scoreIdx := columnIndex(header, "global_score")
	correctionIdx := columnIndex(header, "needs_correction")
	if productIdx < 0 || scoreIdx < 0 {
		return fmt.Errorf("audits CSV must have product_id and global_score columns")
	}

	db := dbFrom(c)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		productID := field(record, productIdx)
		score := nullFloat(field(record, scoreIdx))
		if productID == "" || !score.Valid {
			continue
		}

		needsCorrection := strings.EqualFold(field(record, correctionIdx), "true")

		_, err = db.ExecContext(c.Context, `
			INSERT INTO audit_results (product_id, global_score, needs_correction, audited_at)
			VALUES ($1, $2, $3, NOW())
		`, productID, score.Float64, needsCorrection)
		if err != nil {
			return fmt.Errorf("failed to insert audit for %s: %w", productID, err)
		}
		count++
	}

	log.Printf("imported %d audit results", count)
	return nil
}

func seedPriceRules(c *cli.Context) error {
	reader, header, closeFile, err := openCSV(c)
	if err != nil {
		return err
	}
	defer closeFile()

	idIdx := columnIndex(header, "id")
	nameIdx := columnIndex(header, "name")
	activeIdx := columnIndex(header, "is_active")
	applyIdx := columnIndex(header, "apply_to")
	if idIdx < 0 || applyIdx < 0 {
		return fmt.Errorf("price rules CSV must have id and apply_to columns")
	}

	db := dbFrom(c)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		id := field(record, idIdx)
		if id == "" {
			continue
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO price_rules (id, name, is_active, apply_to, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				is_active = EXCLUDED.is_active,
				apply_to = EXCLUDED.apply_to
		`,
			id,
			nullIfEmpty(field(record, nameIdx)),
			strings.EqualFold(field(record, activeIdx), "true"),
			field(record, applyIdx),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert price rule %s: %w", id, err)
		}
		count++
	}

	log.Printf("imported %d price rules", count)
	return nil
}

func seedPredictions(c *cli.Context) error {
	reader, header, closeFile, err := openCSV(c)
	if err != nil {
		return err
	}
	defer closeFile()

	productIdx := columnIndex(header, "product_id")
	daysIdx := columnIndex(header, "days_until_stockout")
	urgencyIdx := columnIndex(header, "urgency")
	recommendationIdx := columnIndex(header, "recommendation")
	if productIdx < 0 || daysIdx < 0 {
		return fmt.Errorf("predictions CSV must have product_id and days_until_stockout columns")
	}

	db := dbFrom(c)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		productID := field(record, productIdx)
		days := nullInt(field(record, daysIdx))
		if productID == "" || !days.Valid {
			continue
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO stock_predictions (product_id, days_until_stockout, urgency, recommendation, predicted_at)
			VALUES ($1, $2, $3, $4, NOW())
		`,
			productID,
			days.Int64,
			field(record, urgencyIdx),
			field(record, recommendationIdx),
		)
		if err != nil {
			return fmt.Errorf("failed to insert prediction for %s: %w", productID, err)
		}
		count++
	}

	log.Printf("imported %d stock predictions", count)
	return nil
}
