package catalogController

import (
	"encoding/json"
	"log"
	"studyplanner/config"
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

type catalogModule struct {
	Pool     string `json:"pool"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Category string `json:"category"`
}

// SyncModuleCatalog pulls the module catalog from the upstream catalog API
// and upserts it by pool (admin only).
func SyncModuleCatalog(c *fiber.Ctx) error {
	client := resty.New()

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CatalogApiKey).
		Get(config.AppConfig.CatalogApiUrl + "/modules")
	if err != nil {
		log.Printf("Failed to fetch module catalog: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach catalog API!", nil)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Catalog API returned status %d: %s", resp.StatusCode(), resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Catalog API request failed!", nil)
	}

	var payload struct {
		Modules []catalogModule `json:"modules"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Printf("Failed to parse catalog response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Invalid catalog API response!", nil)
	}

	processed := 0
	inserted := 0
	updated := 0
	skipped := 0

	for _, entry := range payload.Modules {
		processed++

		if entry.Pool == "" || entry.Name == "" || entry.Credits < 1 {
			log.Printf("Skipping catalog entry %d: missing required fields (Pool=%s, Name=%s, Credits=%d)",
				processed, entry.Pool, entry.Name, entry.Credits)
			skipped++
			continue
		}

		module := models.Module{
			Pool:     entry.Pool,
			Code:     entry.Code,
			Name:     entry.Name,
			Credits:  entry.Credits,
			Category: entry.Category,
		}

		result := database.Database.Db.Where("pool = ?", module.Pool).
			Assign(module).
			FirstOrCreate(&module)
		if result.Error != nil {
			log.Printf("Error syncing module %s: %v", module.Pool, result.Error)
			skipped++
			continue
		}

		if result.RowsAffected == 1 {
			inserted++
		} else {
			if err := database.Database.Db.Save(&module).Error; err != nil {
				log.Printf("Error updating module %s: %v", module.Pool, err)
				skipped++
				continue
			}
			updated++
		}
	}

	log.Printf("Module catalog sync completed: Processed=%d, Inserted=%d, Updated=%d, Skipped=%d",
		processed, inserted, updated, skipped)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module catalog synced successfully!", fiber.Map{
		"processed": processed,
		"inserted":  inserted,
		"updated":   updated,
		"skipped":   skipped,
	})
}
