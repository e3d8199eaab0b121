package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/crimson-sun/sawmill/internal/model"
)

// LogStore persists acquired build logs and their processed state.
type LogStore struct {
	db *gorm.DB
}

// Add inserts a log record and returns its assigned id.
func (ls *LogStore) Add(rec model.LogRecord) (int64, error) {
	rec.ID = 0
	if err := ls.db.Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("logstore: add: %w", err)
	}
	return rec.ID, nil
}

// Get returns the log record with the given id, or nil if it does not exist.
func (ls *LogStore) Get(id int64) (*model.LogRecord, error) {
	var rec model.LogRecord
	err := ls.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("logstore: get %d: %w", id, err)
	}
	return &rec, nil
}

// All returns every stored log record in insertion order.
func (ls *LogStore) All() ([]model.LogRecord, error) {
	var recs []model.LogRecord
	if err := ls.db.Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("logstore: all: %w", err)
	}
	return recs, nil
}

// FirstUnprocessed returns the oldest unprocessed log, or nil when none remain.
func (ls *LogStore) FirstUnprocessed() (*model.LogRecord, error) {
	var rec model.LogRecord
	err := ls.db.Where("processed = ?", false).Order("id").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("logstore: first unprocessed: %w", err)
	}
	return &rec, nil
}

// RandomUnprocessed returns one unprocessed log drawn at random from a sample
// of up to sampleSize candidates, or nil when none remain.
func (ls *LogStore) RandomUnprocessed(sampleSize int) (*model.LogRecord, error) {
	if sampleSize <= 0 {
		sampleSize = 1
	}
	var recs []model.LogRecord
	err := ls.db.Where("processed = ?", false).
		Order("RANDOM()").Limit(sampleSize).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("logstore: random unprocessed: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// MarkProcessed flags a log record as processed.
func (ls *LogStore) MarkProcessed(id int64) error {
	res := ls.db.Model(&model.LogRecord{}).Where("id = ?", id).Update("processed", true)
	if res.Error != nil {
		return fmt.Errorf("logstore: mark processed %d: %w", id, res.Error)
	}
	return nil
}

// HasPacket reports whether a record for the given packet name already exists.
// Used by connectors to resume acquisition after the last stored log.
func (ls *LogStore) HasPacket(packetName string) (bool, error) {
	var count int64
	err := ls.db.Model(&model.LogRecord{}).Where("packet_name = ?", packetName).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("logstore: has packet: %w", err)
	}
	return count > 0, nil
}
