package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/planwise-io/planwise/internal/shared/constants"
)

// CustomerModel is the persistence model for customers. ExternalID carries
// the payment-processor customer reference and is unique when present.
type CustomerModel struct {
	ID          uint    `gorm:"primarykey"`
	Key         string  `gorm:"uniqueIndex;not null;size:100"`
	DisplayName string  `gorm:"not null;size:255"`
	Email       *string `gorm:"size:255;index:idx_customer_email"`
	Status      string  `gorm:"not null;size:20;index:idx_customer_status"`
	ExternalID  *string `gorm:"uniqueIndex:idx_customer_external_id;size:255"`
	Metadata    datatypes.JSON
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
