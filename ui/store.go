package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Document is a saved expression in the playground.
type Document struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate is a GORM hook that sets default values before inserting
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Store persists playground documents in a SQLite database.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (creating if necessary) the SQLite database at path and
// migrates the document schema.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// List returns all documents, most recently updated first.
func (s *Store) List() ([]Document, error) {
	var docs []Document
	if err := s.db.Order("updated_at desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Create inserts doc and fills in its generated fields.
func (s *Store) Create(doc *Document) error {
	return s.db.Create(doc).Error
}

// Get returns the document with the given id, or (nil, nil) when it does
// not exist.
func (s *Store) Get(id string) (*Document, error) {
	var doc Document
	err := s.db.First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update overwrites the document's name and source.
func (s *Store) Update(id, name, source string) error {
	return s.db.Model(&Document{ID: id}).Updates(map[string]any{
		"name":   name,
		"source": source,
	}).Error
}

// Delete removes the document with the given id. Deleting a missing
// document is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Delete(&Document{}, "id = ?", id).Error
}
