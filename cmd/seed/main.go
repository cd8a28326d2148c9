package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/artigianatoshop/artigianato-backend/config"
	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
)

// Imports a product catalog from an XLSX file.
// Expected columns: Artisan Email | Category | Name | Description | Price | Discount % | Image URL

type productRow struct {
	ArtisanEmail string
	CategoryName string
	Name         string
	Description  string
	Price        float64
	Discount     *float64
	ImageURL     string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Initialize(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// Cache categories by name, creating missing ones as roots
	categories := make(map[string]*model.Category)
	existing, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load categories:", err)
	}
	for i := range existing {
		categories[existing[i].Name] = &existing[i]
	}

	imported := 0
	skipped := 0
	for i, row := range rows {
		artisan, err := userRepo.FindByEmail(row.ArtisanEmail)
		if err != nil {
			fmt.Printf("Row %d: artisan %s not found, skipping\n", i+2, row.ArtisanEmail)
			skipped++
			continue
		}
		if artisan.Role != model.RoleArtisan {
			fmt.Printf("Row %d: user %s is not an artisan, skipping\n", i+2, row.ArtisanEmail)
			skipped++
			continue
		}

		category, ok := categories[row.CategoryName]
		if !ok {
			category = &model.Category{Name: row.CategoryName}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatal("Failed to create category:", err)
			}
			categories[row.CategoryName] = category
			fmt.Printf("Created category: %s\n", row.CategoryName)
		}

		product := &model.Product{
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
			Discount:    row.Discount,
			CategoryID:  category.ID,
			ArtisanID:   artisan.ID,
			ImageURL:    row.ImageURL,
		}
		if err := productRepo.Create(product); err != nil {
			fmt.Printf("Row %d: failed to create product %q: %v\n", i+2, row.Name, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Println("Import completed!")
	fmt.Printf("Imported: %d, skipped: %d\n", imported, skipped)
}

func readProductsFromXLSX(filePath string) ([]productRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rawRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rawRows) < 2 {
		return nil, fmt.Errorf("no data rows found")
	}

	var products []productRow
	// Skip the header row
	for i, raw := range rawRows[1:] {
		if len(raw) < 5 {
			fmt.Printf("Row %d: not enough columns, skipping\n", i+2)
			continue
		}

		cell := func(idx int) string {
			if idx < len(raw) {
				return strings.TrimSpace(raw[idx])
			}
			return ""
		}

		price, err := strconv.ParseFloat(cell(4), 64)
		if err != nil || price <= 0 {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+2, cell(4))
			continue
		}

		var discount *float64
		if discountStr := cell(5); discountStr != "" {
			d, err := strconv.ParseFloat(discountStr, 64)
			if err != nil || d < 0 || d >= 100 {
				fmt.Printf("Row %d: invalid discount %q, skipping\n", i+2, discountStr)
				continue
			}
			if d > 0 {
				discount = &d
			}
		}

		row := productRow{
			ArtisanEmail: cell(0),
			CategoryName: cell(1),
			Name:         cell(2),
			Description:  cell(3),
			Price:        price,
			Discount:     discount,
			ImageURL:     cell(6),
		}
		if row.ArtisanEmail == "" || row.CategoryName == "" || row.Name == "" {
			fmt.Printf("Row %d: missing required fields, skipping\n", i+2)
			continue
		}

		products = append(products, row)
	}

	return products, nil
}
