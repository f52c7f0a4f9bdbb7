package models

import (
	"time"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// SystemConfigModel is a small key-value table for operational state, such
// as the transition worker's last successful run.
type SystemConfigModel struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"uniqueIndex;not null;size:100"`
	Value     string `gorm:"not null;size:1000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SystemConfigModel) TableName() string {
	return constants.TableSystemConfig
}
