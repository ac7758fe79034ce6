package app

import (
	"errors"

	"github.com/cutelabs/drop-ledger/service/events"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Collection{},
		&Token{},
		&AllowlistEntry{},
		&MinterStat{},
		&OperatorApproval{},
	)
}

func (s *GormStore) LoadSnapshot() (*Snapshot, error) {
	snap := Snapshot{}

	err := s.db.First(&snap.Collection, collectionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.Order("id asc").Find(&snap.Tokens).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&snap.AllowlistEntries).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&snap.MinterStats).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&snap.OperatorApprovals).Error; err != nil {
		return nil, err
	}

	return &snap, nil
}

// Commit upserts all rows of a mutation and appends its event in one
// database transaction, so the read model never shows a half-applied
// operation.
func (s *GormStore) Commit(m *Mutation) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}

		if m.Collection != nil {
			if err := tx.Clauses(upsert).Create(m.Collection).Error; err != nil {
				return err
			}
		}

		if len(m.Tokens) > 0 {
			if err := tx.Clauses(upsert).Create(m.Tokens).Error; err != nil {
				return err
			}
		}

		if len(m.AllowlistEntries) > 0 {
			if err := tx.Clauses(upsert).Create(m.AllowlistEntries).Error; err != nil {
				return err
			}
		}

		if len(m.MinterStats) > 0 {
			if err := tx.Clauses(upsert).Create(m.MinterStats).Error; err != nil {
				return err
			}
		}

		if len(m.OperatorApprovals) > 0 {
			if err := tx.Clauses(upsert).Create(m.OperatorApprovals).Error; err != nil {
				return err
			}
		}

		if m.Event != nil {
			if err := m.Event.Insert(tx); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GormStore) ListEvents(limit, offset int) ([]events.Event, error) {
	limit, offset = ParseEventListOptions(limit, offset)
	return events.List(s.db, limit, offset)
}
