package events

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Event{})
}

func (Event) TableName() string {
	return "ledger_events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	e.ID = uuid.New()
	return nil
}

func (e *Event) Insert(db *gorm.DB) error {
	return db.Create(e).Error
}

func List(db *gorm.DB, limit, offset int) ([]Event, error) {
	list := []Event{}
	err := db.Order("created_at asc").Limit(limit).Offset(offset).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
