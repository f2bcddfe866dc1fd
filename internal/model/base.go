package model

import "time"

// StoreEntry is one key of the durable key-value store when it is backed
// by Postgres. Value holds the whole JSON document for the key.
type StoreEntry struct {
	Key       string    `gorm:"column:key;type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (StoreEntry) TableName() string {
	return "store_entries"
}
