package models

import (
	"time"

	"gorm.io/datatypes"
)

// Settings is a single-row record holding UI preferences. It replaces the
// process-wide theme singleton of earlier iterations: it is loaded once and
// passed down explicitly.
type Settings struct {
	ID          uint           `gorm:"column:id;primaryKey" json:"id"`
	Theme       string         `gorm:"column:theme;type:text" json:"theme"` // system|light|dark
	Preferences datatypes.JSON `gorm:"column:preferences" json:"preferences"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }

func DefaultSettings() *Settings {
	return &Settings{ID: 1, Theme: "system", UpdatedAt: time.Now().UTC()}
}
