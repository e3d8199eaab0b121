package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/crimson-sun/sawmill/internal/model"
)

// PatternStore persists classification patterns. IDs are assigned by the
// database on creation and never reused after deletion.
type PatternStore struct {
	db *gorm.DB
}

// Create inserts a new pattern and returns its assigned id.
func (ps *PatternStore) Create(regex, utilityName string, isError, needReviewing bool) (int64, error) {
	p := model.Pattern{
		Regex:         regex,
		UtilityName:   utilityName,
		IsError:       isError,
		NeedReviewing: needReviewing,
	}
	if err := ps.db.Create(&p).Error; err != nil {
		return 0, fmt.Errorf("patternstore: create: %w", err)
	}
	return p.ID, nil
}

// Get returns the pattern with the given id, or nil if it does not exist.
func (ps *PatternStore) Get(id int64) (*model.Pattern, error) {
	var p model.Pattern
	err := ps.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("patternstore: get %d: %w", id, err)
	}
	return &p, nil
}

// All returns every stored pattern in insertion (id) order. This is the
// snapshot source: the returned order is the classifier's tie-break order.
func (ps *PatternStore) All() ([]model.Pattern, error) {
	var patterns []model.Pattern
	if err := ps.db.Order("id").Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("patternstore: all: %w", err)
	}
	return patterns, nil
}

// MarkReviewed clears the need_reviewing flag. The transition is one-way;
// there is no automatic path back to needs-review.
func (ps *PatternStore) MarkReviewed(id int64) error {
	res := ps.db.Model(&model.Pattern{}).Where("id = ?", id).Update("need_reviewing", false)
	if res.Error != nil {
		return fmt.Errorf("patternstore: mark reviewed %d: %w", id, res.Error)
	}
	return nil
}

// UpdateUtility rewrites a pattern's utility name, optionally sending it
// back to review. Used by the hygiene pass, not by the online path.
func (ps *PatternStore) UpdateUtility(id int64, utilityName string, needReviewing bool) error {
	res := ps.db.Model(&model.Pattern{}).Where("id = ?", id).
		Updates(map[string]any{"utility_name": utilityName, "need_reviewing": needReviewing})
	if res.Error != nil {
		return fmt.Errorf("patternstore: update utility %d: %w", id, res.Error)
	}
	return nil
}

// Delete removes a pattern. Returns true if a row was deleted.
func (ps *PatternStore) Delete(id int64) (bool, error) {
	res := ps.db.Delete(&model.Pattern{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("patternstore: delete %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
