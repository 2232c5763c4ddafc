package models

import "time"

// AssetMaster is one row of the full-market listing snapshot maintained by
// the bulk collector. Ticker is the sole identity; rows are upserted and
// never deleted, so delisted tickers go stale rather than disappear.
type AssetMaster struct {
	Ticker      string    `gorm:"primaryKey;size:12" json:"ticker"`
	Name        string    `gorm:"not null" json:"name"`
	MarketType  string    `gorm:"not null;index" json:"marketType"`
	Category    *string   `json:"category,omitempty"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName keeps the legacy table name used by the dashboard.
func (AssetMaster) TableName() string { return "assets_master" }
