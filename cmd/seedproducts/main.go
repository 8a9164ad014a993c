// Command seedproducts loads a product catalog from an Excel workbook into the
// products and product_descriptions tables.
// Expected columns: A=code, B=name, C=unit, D..=alternative descriptions.
// Data starts at row index 1 (row 0 is the header).
// Usage: go run ./cmd/seedproducts catalog.xlsx
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedproducts <catalog.xlsx>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	repo := postgres.NewProductRepo(db)
	ctx := context.Background()

	var products, descriptions int
	seen := make(map[string]bool)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		code := strings.TrimSpace(cellVal(row, 0))
		name := strings.TrimSpace(cellVal(row, 1))
		if code == "" || name == "" {
			continue
		}
		if seen[code] {
			log.Printf("row %d: duplicate code %s, skipping", i+1, code)
			continue
		}
		seen[code] = true

		product := &domain.Product{
			ID:       uuid.New(),
			Code:     code,
			Name:     name,
			Unit:     strings.TrimSpace(cellVal(row, 2)),
			IsActive: true,
		}
		if err := repo.Create(ctx, product); err != nil {
			return fmt.Errorf("row %d: upsert product %s: %w", i+1, code, err)
		}
		products++

		// Upsert may have kept an existing row; look up the persisted ID
		// before attaching descriptions.
		persisted, err := repo.GetByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("row %d: reload product %s: %w", i+1, code, err)
		}

		for col := 3; col < len(row); col++ {
			desc := strings.TrimSpace(cellVal(row, col))
			if desc == "" {
				continue
			}
			err := repo.AddDescription(ctx, &domain.ProductDescription{
				ID:          uuid.New(),
				ProductID:   persisted.ID,
				Description: desc,
				Source:      domain.DescriptionSourceCatalog,
			})
			if err != nil {
				return fmt.Errorf("row %d: add description for %s: %w", i+1, code, err)
			}
			descriptions++
		}
	}

	log.Printf("Seeded %d products and %d descriptions", products, descriptions)
	return nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
