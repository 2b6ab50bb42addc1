package session

import "time"

// Entry is one key of the local key/value store that backs the session.
type Entry struct {
	Key       string    `gorm:"column:storage_key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string {
	return "local_storage"
}
