package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portostore/portostore/app/models"
)

// CanonicalSizes is the fixed label vocabulary every product's stock rows
// are drawn from.
var CanonicalSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "Sin talle"}

// EnsureSizes inserts any canonical size names missing from the sizes table.
// Matching is case-insensitive and the insert ignores conflicts on the
// lowercased name, so concurrent callers cannot duplicate the vocabulary.
// Returns how many rows were actually inserted.
func EnsureSizes(ctx context.Context, db *gorm.DB) (int, error) {
	var existing []models.Size
	if err := db.WithContext(ctx).Find(&existing).Error; err != nil {
		return 0, fmt.Errorf("sizes: fetch existing: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[strings.ToLower(strings.TrimSpace(s.Name))] = true
	}

	var missing []models.Size
	for _, name := range CanonicalSizes {
		if !known[strings.ToLower(name)] {
			missing = append(missing, models.Size{Name: name})
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).
		Create(&missing)
	if res.Error != nil {
		return 0, fmt.Errorf("sizes: insert missing: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
