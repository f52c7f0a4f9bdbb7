package dto

import (
	"time"

	"github.com/planwise-io/planwise/internal/domain/customer"
)

type CustomerDTO struct {
	Key         string                 `json:"key"`
	DisplayName string                 `json:"display_name"`
	Email       *string                `json:"email,omitempty"`
	Status      string                 `json:"status"`
	ExternalID  *string                `json:"external_billing_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func ToCustomerDTO(c *customer.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		Key:         c.Key(),
		DisplayName: c.DisplayName(),
		Email:       c.Email(),
		Status:      c.Status().String(),
		ExternalID:  c.ExternalID(),
		Metadata:    c.Metadata(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
