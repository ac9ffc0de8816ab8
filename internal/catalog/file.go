package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/prometheus"
)

// FileSource reads the product set from a JSON array on disk. The file is
// re-read on every load so catalog edits show up without a restart.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the catalog file. A missing or malformed file is
// reported as ErrSourceUnavailable so the service can degrade to an empty
// catalog.
func (f *FileSource) Load() ([]model.Product, error) {
	defer prometheus.TrackCatalogLoad("file")(time.Now())

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return products, nil
}
