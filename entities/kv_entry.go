package entities

// KVEntry backs the postgres key-value driver.
type KVEntry struct {
	Key   string `gorm:"column:entry_key;primaryKey;size:191" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`

	Timestamp
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
