package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the read-only corpus row the planner and search engine work
// over. Nutrition columns are nullable; nil means the source dataset had
// no value, which callers must treat as unavailable rather than zero.
type Recipe struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Serves      *int   `gorm:"index" json:"serves"`
	Minutes     *int   `gorm:"index" json:"minutes"`

	// ExternalID carries the upstream dataset identifier when the row was
	// imported from the public recipe corpus.
	ExternalID  *int64     `gorm:"uniqueIndex" json:"external_id,omitempty"`
	SubmittedAt *time.Time `gorm:"index" json:"submitted_at,omitempty"`

	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`

	Calories         *float64 `gorm:"type:float" json:"calories,omitempty"`
	TotalFatPDV      *float64 `gorm:"type:float" json:"total_fat_pdv,omitempty"`
	SugarPDV         *float64 `gorm:"type:float" json:"sugar_pdv,omitempty"`
	SodiumPDV        *float64 `gorm:"type:float" json:"sodium_pdv,omitempty"`
	ProteinPDV       *float64 `gorm:"type:float" json:"protein_pdv,omitempty"`
	SaturatedFatPDV  *float64 `gorm:"type:float" json:"saturated_fat_pdv,omitempty"`
	CarbohydratesPDV *float64 `gorm:"type:float" json:"carbohydrates_pdv,omitempty"`
}

// Ingredient is a vocabulary row used by the lexical extractor to decide
// which prompt tokens name real ingredients.
type Ingredient struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;not null;uniqueIndex" json:"name"`
}

// Tag is a vocabulary row for recipe tags such as "vegetarian" or
// "30-minutes-or-less".
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
