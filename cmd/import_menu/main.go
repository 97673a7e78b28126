package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"barboard/internal/config"
	"barboard/internal/db"
	"barboard/models"
)

var (
	pricePattern      = regexp.MustCompile(`[\$S]?\s*(\d+(?:\.\d{1,2})?)\s*$`)
	dotLeaderPattern  = regexp.MustCompile(`\.{2,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// menuItem is one parsed line of a venue menu.
type menuItem struct {
	Name  string
	Price string
}

func main() {
	pdfPath := "menu.pdf"
	if len(os.Args) > 1 {
		pdfPath = os.Args[1]
	}

	if err := run(pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(pdfPath string) error {
	if strings.TrimSpace(pdfPath) == "" {
		return fmt.Errorf("pdf path must not be empty")
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("locate pdf: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	items, err := readMenu(pdfPath)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	if len(items) == 0 {
		return errors.New("no menu items found in pdf")
	}

	venueID, err := resolveImportVenue(database)
	if err != nil {
		return fmt.Errorf("resolve venue: %w", err)
	}

	imported := 0
	for idx, item := range items {
		if err := database.Transaction(func(tx *gorm.DB) error {
			var existing models.VenueMenu
			err := tx.Where("venue_id = ? AND item_name = ?", venueID, item.Name).First(&existing).Error
			switch {
			case err == nil:
				return tx.Model(&existing).Update("original_price", item.Price).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				row := models.VenueMenu{
					VenueID:       venueID,
					ItemName:      item.Name,
					OriginalPrice: item.Price,
				}
				return tx.Create(&row).Error
			default:
				return err
			}
		}); err != nil {
			return fmt.Errorf("item %d (%s): %w", idx+1, item.Name, err)
		}
		imported++
	}

	fmt.Fprintf(os.Stdout, "Imported %d menu items from %s\n", imported, filepath.Base(pdfPath))
	return nil
}

// resolveImportVenue picks the target venue: a BARBOARD_MENU_VENUE name when
// set, otherwise the lowest-numbered venue.
func resolveImportVenue(database *gorm.DB) (uint, error) {
	if database == nil {
		return 0, fmt.Errorf("database handle is nil")
	}

	name := strings.TrimSpace(os.Getenv("BARBOARD_MENU_VENUE"))
	if name != "" {
		var venue models.Venue
		if err := database.Where("lower(venue_name) = ?", strings.ToLower(name)).First(&venue).Error; err != nil {
			return 0, fmt.Errorf("find venue by name %q: %w", name, err)
		}
		return venue.ID, nil
	}

	var venue models.Venue
	if err := database.Order("id asc").First(&venue).Error; err != nil {
		return 0, fmt.Errorf("find default venue: %w", err)
	}
	return venue.ID, nil
}

func readMenu(path string) ([]menuItem, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	items := make([]menuItem, 0)
	seen := map[string]struct{}{}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		for _, line := range pageLines(page) {
			item, ok := parseMenuLine(line)
			if !ok {
				continue
			}
			key := strings.ToLower(item.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}
	return items, nil
}

// pageLines groups positioned text fragments into lines by their Y
// coordinate, preserving reading order.
func pageLines(page pdf.Page) []string {
	texts := page.Content().Text
	lines := make([]string, 0)
	var current strings.Builder
	lastY := -1.0
	for _, t := range texts {
		if lastY >= 0 && t.Y != lastY {
			lines = append(lines, current.String())
			current.Reset()
		}
		current.WriteString(t.S)
		lastY = t.Y
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// parseMenuLine splits "Negroni .... 18.00" style lines into a name and a
// price. Lines without a trailing price are skipped.
func parseMenuLine(line string) (menuItem, bool) {
	cleaned := dotLeaderPattern.ReplaceAllString(line, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return menuItem{}, false
	}

	match := pricePattern.FindStringSubmatchIndex(cleaned)
	if match == nil {
		return menuItem{}, false
	}

	raw := cleaned[match[2]:match[3]]
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return menuItem{}, false
	}

	name := strings.TrimSpace(cleaned[:match[0]])
	name = strings.Trim(name, "-–:")
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 120 {
		return menuItem{}, false
	}

	return menuItem{Name: name, Price: fmt.Sprintf("%.2f", price)}, true
}
