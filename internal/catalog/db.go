package catalog

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/prometheus"
)

// DBSource reads the product set from the migrated products table.
type DBSource struct {
	db *gorm.DB
}

// NewDBSource creates a database-backed catalog source.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

// Load queries all products. Driver errors surface as ErrSourceUnavailable.
func (d *DBSource) Load() ([]model.Product, error) {
	defer prometheus.TrackCatalogLoad("db")(time.Now())

	var products []model.Product
	if result := d.db.Find(&products); result.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, result.Error)
	}
	return products, nil
}
