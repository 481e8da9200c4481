package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeDonationRecorded  = "donation.recorded"
	EventTypeDeliveryCompleted = "delivery.completed"
)

// LedgerEventTypes lists every event the ledger emits, in the order the
// broker bridge subscribes them.
var LedgerEventTypes = []string{EventTypeDonationRecorded, EventTypeDeliveryCompleted}

type DonationRecordedEvent struct {
	BaseEvent
	DonationID         int64           `json:"donation_id"`
	DonationCode       string          `json:"donation_code"`
	Kind               string          `json:"kind"`
	ProgramID          int64           `json:"program_id"`
	ProductDescription string          `json:"product_description,omitempty"`
	Quantity           int64           `json:"quantity,omitempty"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	ActorID            int64           `json:"actor_id"`
}

func NewDonationRecordedEvent(donationID int64, code, kind string, programID int64, product string, quantity int64, baseAmount decimal.Decimal, actorID int64) *DonationRecordedEvent {
	return &DonationRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDonationRecorded,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"donation_id":         donationID,
				"donation_code":       code,
				"kind":                kind,
				"program_id":          programID,
				"product_description": product,
				"quantity":            quantity,
				"base_amount":         baseAmount.StringFixed(2),
				"actor_id":            actorID,
			},
		},
		DonationID:         donationID,
		DonationCode:       code,
		Kind:               kind,
		ProgramID:          programID,
		ProductDescription: product,
		Quantity:           quantity,
		BaseAmount:         baseAmount,
		ActorID:            actorID,
	}
}

type DeliveryCompletedEvent struct {
	BaseEvent
	DeliveryID         int64           `json:"delivery_id"`
	DeliveryCode       string          `json:"delivery_code"`
	BeneficiaryID      int64           `json:"beneficiary_id"`
	ProgramID          int64           `json:"program_id"`
	ProductDescription string          `json:"product_description"`
	Quantity           int64           `json:"quantity"`
	TotalValue         decimal.Decimal `json:"total_value"`
	ActorID            int64           `json:"actor_id"`
}

func NewDeliveryCompletedEvent(deliveryID int64, code string, beneficiaryID, programID int64, product string, quantity int64, totalValue decimal.Decimal, actorID int64) *DeliveryCompletedEvent {
	return &DeliveryCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDeliveryCompleted,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"delivery_id":         deliveryID,
				"delivery_code":       code,
				"beneficiary_id":      beneficiaryID,
				"program_id":          programID,
				"product_description": product,
				"quantity":            quantity,
				"total_value":         totalValue.StringFixed(2),
				"actor_id":            actorID,
			},
		},
		DeliveryID:         deliveryID,
		DeliveryCode:       code,
		BeneficiaryID:      beneficiaryID,
		ProgramID:          programID,
		ProductDescription: product,
		Quantity:           quantity,
		TotalValue:         totalValue,
		ActorID:            actorID,
	}
}
