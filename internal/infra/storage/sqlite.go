package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Juskocode/QDSMarketTool/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists the last-known open/closed state of every venue across
// evaluation runs.
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the SQLite state database at path.
func NewStore(path string) (*Store, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.VenueState{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// LoadStates returns the last-known state of every venue ever recorded.
// Venues with no record are simply absent from the map.
func (s *Store) LoadStates() (map[string]bool, error) {
	var states []domain.VenueState
	if err := s.db.Find(&states).Error; err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(states))
	for _, st := range states {
		result[st.ID] = st.Open
	}
	return result, nil
}

// SaveStates upserts the given venue states.
func (s *Store) SaveStates(states map[string]bool) error {
	for id, open := range states {
		st := domain.VenueState{ID: id, Open: open}
		if err := s.db.Save(&st).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetState retrieves one venue's persisted state; nil when never recorded.
func (s *Store) GetState(id string) (*bool, error) {
	var st domain.VenueState
	err := s.db.First(&st, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	open := st.Open
	return &open, nil
}
