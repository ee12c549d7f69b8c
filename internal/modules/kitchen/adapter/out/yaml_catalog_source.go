package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"studychef/internal/modules/kitchen/domain"
	kitchenout "studychef/internal/modules/kitchen/port/out"
	"studychef/internal/platform/slug"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// YAMLCatalogSource reads the game catalog from path, or from the built-in
// catalog when path is empty.
type YAMLCatalogSource struct {
	path string
}

func NewYAMLCatalogSource(path string) kitchenout.CatalogSource {
	return &YAMLCatalogSource{path: path}
}

type catalogFile struct {
	Ingredients  []string           `yaml:"ingredients"`
	Recipes      []recipeEntry      `yaml:"recipes"`
	Shop         []shopEntry        `yaml:"shop"`
	Achievements []achievementEntry `yaml:"achievements"`
}

type rewardEntry struct {
	XP    int `yaml:"xp"`
	Coins int `yaml:"coins"`
}

type recipeEntry struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Needs  map[string]int `yaml:"needs"`
	Reward rewardEntry    `yaml:"reward"`
}

type shopEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
	Category    string `yaml:"category"`
	Effect      struct {
		XPMultiplier    float64 `yaml:"xp_multiplier"`
		CoinMultiplier  float64 `yaml:"coin_multiplier"`
		ExtraIngredient bool    `yaml:"extra_ingredient"`
	} `yaml:"effect"`
}

type achievementEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Metric      string  `yaml:"metric"`
	Threshold   float64 `yaml:"threshold"`
}

func (s *YAMLCatalogSource) Load(_ context.Context) (domain.Catalog, error) {
	raw := embeddedCatalog
	if s.path != "" {
		content, err := os.ReadFile(s.path)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
		}
		raw = content
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog. Unknown keys are
// rejected. Entries without an id get one derived from their name.
func ParseCatalog(raw []byte) (domain.Catalog, error) {
	file := catalogFile{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := domain.Catalog{Ingredients: file.Ingredients}
	for _, r := range file.Recipes {
		catalog.Recipes = append(catalog.Recipes, domain.Recipe{
			ID:     entryID(r.ID, r.Name),
			Name:   r.Name,
			Needs:  r.Needs,
			Reward: domain.Reward{XP: r.Reward.XP, Coins: r.Reward.Coins},
		})
	}
	for _, item := range file.Shop {
		catalog.Shop = append(catalog.Shop, domain.UpgradeItem{
			ID:          entryID(item.ID, item.Name),
			Name:        item.Name,
			Description: item.Description,
			Cost:        item.Cost,
			Category:    domain.Category(item.Category),
			Effect: domain.Effect{
				XPMultiplier:    item.Effect.XPMultiplier,
				CoinMultiplier:  item.Effect.CoinMultiplier,
				ExtraIngredient: item.Effect.ExtraIngredient,
			},
		})
	}
	for _, a := range file.Achievements {
		metric := domain.Metric(a.Metric)
		if err := metric.Validate(); err != nil {
			return domain.Catalog{}, fmt.Errorf("achievement %s: %w", entryID(a.ID, a.Name), err)
		}
		catalog.Achievements = append(catalog.Achievements, domain.Achievement{
			ID:          entryID(a.ID, a.Name),
			Name:        a.Name,
			Description: a.Description,
			Predicate:   domain.AtLeast(metric, a.Threshold),
		})
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}
	return catalog, nil
}

func entryID(id, name string) string {
	if id != "" {
		return id
	}
	if name == "" {
		return ""
	}
	return slug.Make(name)
}
