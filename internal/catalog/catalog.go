package catalog

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

// ErrSourceUnavailable is returned by sources that cannot reach their
// backing data. The service degrades to an empty catalog on it; the error
// never reaches the dialogue layer.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Source produces the current product set. Implementations are expected to
// be cheap enough to call on every catalog read; the data set is small and
// the service does not cache.
type Source interface {
	Load() ([]model.Product, error)
}

// Service exposes category and product lookups over a Source.
type Service struct {
	source Source
	log    *zap.Logger
}

// NewService creates a catalog service over the given source.
func NewService(source Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{source: source, log: log}
}

func (s *Service) products() []model.Product {
	products, err := s.source.Load()
	if err != nil {
		s.log.Warn("Catalog source unavailable, serving empty catalog", zap.Error(err))
		return nil
	}
	return products
}

// Categories returns the distinct, trimmed category labels present in the
// product set, sorted for stable menus. An unavailable source yields an
// empty list.
func (s *Service) Categories() []string {
	seen := make(map[string]string)
	for _, p := range s.products() {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}

	categories := make([]string, 0, len(seen))
	for _, name := range seen {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories
}

// MatchCategory resolves free text to a category label, case-insensitively
// and ignoring surrounding whitespace. It returns the canonical label.
func (s *Service) MatchCategory(text string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(text))
	if want == "" {
		return "", false
	}
	for _, category := range s.Categories() {
		if strings.ToLower(strings.TrimSpace(category)) == want {
			return category, true
		}
	}
	return "", false
}

// ProductsByCategory returns every product whose category matches the given
// label, case-insensitively. An empty category yields an empty slice, not
// an error.
func (s *Service) ProductsByCategory(category string) []model.Product {
	want := strings.ToLower(strings.TrimSpace(category))
	var matched []model.Product
	for _, p := range s.products() {
		if strings.ToLower(strings.TrimSpace(p.Category)) == want {
			matched = append(matched, p)
		}
	}
	return matched
}

// ProductByID looks up a single product by its identifier.
func (s *Service) ProductByID(id int) (model.Product, bool) {
	for _, p := range s.products() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
