package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
	"studyplanner/config"
	"studyplanner/database"
	"studyplanner/models"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("ModuleCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		// Parse fields from CSV
		module := models.Module{
			Pool:     getField(row, headerIndex, "pool"),
			Code:     getField(row, headerIndex, "code"),
			Name:     getField(row, headerIndex, "name"),
			Credits:  parseInt(getField(row, headerIndex, "credits")),
			Category: getField(row, headerIndex, "category"),
		}

		// Skip if no pool or name
		if module.Pool == "" || module.Name == "" {
			skipped++
			continue
		}

		// Check if module exists by pool
		var existing models.Module
		result := database.Database.Db.Where("pool = ?", module.Pool).First(&existing)

		if result.Error != nil {
			// Insert new module
			if err := database.Database.Db.Create(&module).Error; err != nil {
				log.Printf("Error inserting module %s (pool=%s): %v", module.Name, module.Pool, err)
				continue
			}
			inserted++
		} else {
			// Update existing module
			existing.Code = module.Code
			existing.Name = module.Name
			existing.Credits = module.Credits
			existing.Category = module.Category

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating module %s (pool=%s): %v", module.Name, module.Pool, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseInt converts string to int
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}
