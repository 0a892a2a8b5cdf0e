package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/sp4c38/pizzatech-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogFetcher is the part of the backend client the catalog service needs.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) (*models.Catalog, error)
}

// CatalogService holds the current in-memory catalog. It is constructed once
// and injected into everything that needs catalog access; there is no global
// catalog. The catalog is replaced wholesale on every successful fetch.
type CatalogService struct {
	api CatalogFetcher
	db  *gorm.DB

	mu          sync.RWMutex
	catalog     *models.Catalog
	stale       bool
	subscribers []chan struct{}
}

func NewCatalogService(api CatalogFetcher, db *gorm.DB) *CatalogService {
	return &CatalogService{api: api, db: db}
}

// Fetch downloads the catalog and installs it. When the backend is
// unreachable and a snapshot of an earlier fetch exists, the snapshot is
// installed instead and the catalog is marked stale; otherwise the fetch
// error is returned for the caller to retry.
func (s *CatalogService) Fetch(ctx context.Context) error {
	catalog, err := s.api.FetchCatalog(ctx)
	if err != nil {
		if snapshot, ok := s.loadSnapshot(); ok {
			log.Println("Catalog fetch failed, falling back to stored snapshot:", err)
			s.install(snapshot, true)
			return nil
		}
		return err
	}

	s.install(catalog, false)
	s.saveSnapshot(catalog)
	return nil
}

// Refresh re-downloads the catalog, replacing the current one wholesale.
func (s *CatalogService) Refresh(ctx context.Context) error {
	return s.Fetch(ctx)
}

// Current returns the installed catalog, or nil when no fetch has succeeded
// yet and no snapshot existed.
func (s *CatalogService) Current() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Stale reports whether the installed catalog came from a snapshot fallback
// rather than a live fetch.
func (s *CatalogService) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Subscribe returns a channel that receives a signal whenever a new catalog
// is installed.
func (s *CatalogService) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *CatalogService) install(catalog *models.Catalog, stale bool) {
	s.mu.Lock()
	s.catalog = catalog
	s.stale = stale
	subscribers := s.subscribers
	s.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// FindItem scans the categories in the fixed lookup order for an entry with
// the given id. First match wins. Absence is an expected outcome: cart and
// order lines may refer to items that disappeared from a refreshed catalog.
func (s *CatalogService) FindItem(itemID int) (*models.Item, models.CategoryKey, bool) {
	return findItem(s.Current(), itemID)
}

func findItem(catalog *models.Catalog, itemID int) (*models.Item, models.CategoryKey, bool) {
	if catalog == nil {
		return nil, "", false
	}
	for _, key := range models.LookupOrder {
		category := catalog.Categories.ByKey(key)
		for index := range category.Items {
			if category.Items[index].ID == itemID {
				return &category.Items[index], key, true
			}
		}
	}
	return nil, "", false
}

// Resolve projects an item id and size index into a display-ready structure.
// A missing item is reported through the bool; a size index the entry does
// not have is an error, not a panic. The catalog is captured once so a
// concurrent refresh cannot mix item and size names from different catalogs.
func (s *CatalogService) Resolve(itemID, sizeIndex int) (*models.ResolvedItem, bool, error) {
	catalog := s.Current()
	item, categoryKey, found := findItem(catalog, itemID)
	if !found {
		return nil, false, nil
	}
	if sizeIndex < 0 || sizeIndex >= len(item.Prices) {
		return nil, true, fmt.Errorf("%w: item %d has %d prices, index %d requested",
			ErrSizeIndexOutOfRange, itemID, len(item.Prices), sizeIndex)
	}

	resolved := &models.ResolvedItem{
		ItemID:                item.ID,
		Name:                  item.Name,
		ImageName:             item.ImageName,
		Category:              categoryKey,
		SizeIndex:             sizeIndex,
		Price:                 item.Prices[sizeIndex],
		IngredientDescription: item.IngredientDescription,
		Speciality:            item.Speciality,
	}
	category := catalog.Categories.ByKey(categoryKey)
	if sizeIndex < len(category.SizeNames) {
		resolved.SizeName = category.SizeNames[sizeIndex]
	}
	return resolved, true, nil
}

func (s *CatalogService) loadSnapshot() (*models.Catalog, bool) {
	if s.db == nil {
		return nil, false
	}
	var snapshot models.CatalogSnapshot
	if err := s.db.Order("created_at desc").First(&snapshot).Error; err != nil {
		return nil, false
	}
	var catalog models.Catalog
	if err := json.Unmarshal(snapshot.Payload, &catalog); err != nil {
		log.Println("Stored catalog snapshot could not be decoded:", err)
		return nil, false
	}
	return &catalog, true
}

func (s *CatalogService) saveSnapshot(catalog *models.Catalog) {
	if s.db == nil {
		return
	}
	raw, err := json.Marshal(catalog)
	if err != nil {
		log.Println("Could not encode catalog snapshot:", err)
		return
	}
	if err := s.db.Create(&models.CatalogSnapshot{Payload: datatypes.JSON(raw)}).Error; err != nil {
		log.Println("Could not store catalog snapshot:", err)
	}
}
