package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/plateful/backend/internal/models"
)

const batchSize = 500

// recipeRow mirrors one entry of the exported recipe dataset.
type recipeRow struct {
	ExternalID   int64     `json:"external_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Serves       *int      `json:"serves"`
	Minutes      *int      `json:"minutes"`
	SubmittedAt  *string   `json:"submitted_at"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Tags         []string  `json:"tags"`
	Nutrition    []float64 `json:"nutrition"`
}

func main() {
	file := flag.String("file", "recipes.json", "Path to the recipe dataset JSON file")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}

	var rows []recipeRow
	if err := json.Unmarshal(content, &rows); err != nil {
		log.Fatalf("failed to parse dataset: %v", err)
	}

	recipes := make([]models.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, toModel(row))
	}

	for start := 0; start < len(recipes); start += batchSize {
		end := start + batchSize
		if end > len(recipes) {
			end = len(recipes)
		}
		batch := recipes[start:end]
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			UpdateAll: true,
		}).Create(&batch).Error
		if err != nil {
			log.Fatalf("failed to insert recipes %d-%d: %v", start, end, err)
		}
	}
	fmt.Printf("Seeded %d recipes\n", len(recipes))

	if err := rebuildVocabulary(db, recipes); err != nil {
		log.Fatalf("failed to rebuild vocabulary: %v", err)
	}
}

func toModel(row recipeRow) models.Recipe {
	recipe := models.Recipe{
		Name:         strings.TrimSpace(row.Name),
		Description:  strings.TrimSpace(row.Description),
		Serves:       row.Serves,
		Minutes:      row.Minutes,
		Ingredients:  row.Ingredients,
		Instructions: row.Instructions,
		Tags:         row.Tags,
	}
	if row.ExternalID != 0 {
		id := row.ExternalID
		recipe.ExternalID = &id
	}
	if row.SubmittedAt != nil {
		if ts, err := time.Parse("2006-01-02", *row.SubmittedAt); err == nil {
			recipe.SubmittedAt = &ts
		}
	}

	// The dataset packs nutrition as [calories, total fat, sugar, sodium,
	// protein, saturated fat, carbohydrates], all but calories in percent
	// daily value.
	if len(row.Nutrition) == 7 {
		targets := []**float64{
			&recipe.Calories, &recipe.TotalFatPDV, &recipe.SugarPDV,
			&recipe.SodiumPDV, &recipe.ProteinPDV, &recipe.SaturatedFatPDV,
			&recipe.CarbohydratesPDV,
		}
		for i, target := range targets {
			v := row.Nutrition[i]
			*target = &v
		}
	}
	return recipe
}

// rebuildVocabulary refreshes the ingredient and tag lookup tables from
// the seeded rows so the prompt parser recognizes every term the corpus
// actually uses.
func rebuildVocabulary(db *gorm.DB, recipes []models.Recipe) error {
	ingredients := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, r := range recipes {
		for _, name := range r.Ingredients {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				ingredients[name] = struct{}{}
			}
		}
		for _, name := range r.Tags {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				tags[name] = struct{}{}
			}
		}
	}

	for name := range ingredients {
		row := models.Ingredient{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	for name := range tags {
		row := models.Tag{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Vocabulary: %d ingredients, %d tags\n", len(ingredients), len(tags))
	return nil
}
