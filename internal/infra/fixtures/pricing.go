package fixtures

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/money"
)

// Pricing fixture files carry money as decimal strings in major units; they
// are converted to centavos on load so the engine only ever sees integers.

type pricingFile struct {
	RoomCategories []roomCategoryEntry `yaml:"room_categories"`
	Packages       []packageEntry      `yaml:"packages"`
	Items          []itemEntry         `yaml:"items"`
	LessonTiers    []tierEntry         `yaml:"lesson_tiers"`
}

type roomCategoryEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	PricePerNight string `yaml:"price_per_night"`
	Billing       string `yaml:"billing"`
}

type packageEntry struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	FixedPrice string         `yaml:"fixed_price"`
	Included   map[string]int `yaml:"included"`
}

type itemEntry struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Basis string `yaml:"basis"`
}

type tierEntry struct {
	UpTo int    `yaml:"up_to"`
	Rate string `yaml:"rate"`
}

// LoadPricingConfig reads a pricing configuration from a YAML fixture file.
func LoadPricingConfig(path string) (pricing.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pricing.Config{}, err
	}
	return ParsePricingConfig(raw)
}

// ParsePricingConfig decodes fixture bytes into an engine configuration.
func ParsePricingConfig(raw []byte) (pricing.Config, error) {
	var file pricingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return pricing.Config{}, fmt.Errorf("fixtures: decode pricing config: %w", err)
	}

	cfg := pricing.Config{Items: make(map[pricing.ItemKey]pricing.ItemPrice)}

	for _, entry := range file.RoomCategories {
		price, err := money.ParseBRL(entry.PricePerNight)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("fixtures: room category %s: %w", entry.ID, err)
		}
		cfg.RoomCategories = append(cfg.RoomCategories, pricing.RoomCategory{
			ID:            entry.ID,
			Name:          entry.Name,
			PricePerNight: price,
			Billing:       pricing.BillingBasis(entry.Billing),
		})
	}

	for _, entry := range file.Packages {
		price, err := money.ParseBRL(entry.FixedPrice)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("fixtures: package %s: %w", entry.ID, err)
		}
		included := make(map[pricing.ItemKey]int, len(entry.Included))
		for key, qty := range entry.Included {
			included[pricing.ItemKey(key)] = qty
		}
		cfg.Packages = append(cfg.Packages, pricing.Package{
			ID:         entry.ID,
			Name:       entry.Name,
			FixedPrice: price,
			Included:   included,
		})
	}

	for _, entry := range file.Items {
		price, err := money.ParseBRL(entry.Price)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("fixtures: item %s: %w", entry.Key, err)
		}
		key := pricing.ItemKey(entry.Key)
		cfg.Items[key] = pricing.ItemPrice{
			Key:   key,
			Name:  entry.Name,
			Price: price,
			Basis: pricing.BillingBasis(entry.Basis),
		}
	}

	for _, entry := range file.LessonTiers {
		rate, err := money.ParseBRL(entry.Rate)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("fixtures: lesson tier %d: %w", entry.UpTo, err)
		}
		cfg.LessonTiers = append(cfg.LessonTiers, pricing.LessonTier{UpTo: entry.UpTo, Rate: rate})
	}

	if err := cfg.ValidateTiers(); err != nil {
		return pricing.Config{}, err
	}
	return cfg, nil
}
