package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

// Shipment tracks the physical delivery of a sale. It references the sale by
// bill_id and has no ledger effect; stock was consumed when the sale was
// created.
type Shipment struct {
	ID             int            `gorm:"primary_key" json:"id"`
	ShipmentId     string         `gorm:"size:100;not null;uniqueIndex" json:"shipment_id" binding:"required"`
	BillId         string         `gorm:"size:100;not null;index" json:"bill_id" binding:"required"`
	Carrier        string         `gorm:"size:100" json:"carrier"`
	TrackingNumber string         `gorm:"size:100" json:"tracking_number"`
	Status         ShipmentStatus `gorm:"type:enum('pending','in_transit','delivered');default:'pending'" json:"status"`
	ShippedAt      *time.Time     `json:"shipped_at"`
	DeliveredAt    *time.Time     `json:"delivered_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewShipment struct {
	ShipmentId     string `json:"shipment_id" binding:"required,max=100"`
	BillId         string `json:"bill_id" binding:"required,max=100"`
	Carrier        string `json:"carrier" binding:"omitempty,max=100"`
	TrackingNumber string `json:"tracking_number" binding:"omitempty,max=100"`
}

type UpdateShipmentInput struct {
	Carrier        *string         `json:"carrier" binding:"omitempty,max=100"`
	TrackingNumber *string         `json:"tracking_number" binding:"omitempty,max=100"`
	Status         *ShipmentStatus `json:"status" binding:"omitempty,oneof=pending in_transit delivered"`
}

func (input *NewShipment) validate(ctx context.Context) error {
	if err := utils.ValidateUnique[Shipment](ctx, "shipment_id", input.ShipmentId, 0); err != nil {
		return err
	}
	if err := utils.ValidateResourceWhere[Sale](ctx, "bill_id = ?", input.BillId); err != nil {
		return fmt.Errorf("%w: sale %s", utils.ErrorRecordNotFound, input.BillId)
	}
	return nil
}

func CreateShipment(ctx context.Context, input *NewShipment) (*Shipment, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	shipment := Shipment{
		ShipmentId:     input.ShipmentId,
		BillId:         input.BillId,
		Carrier:        input.Carrier,
		TrackingNumber: input.TrackingNumber,
		Status:         ShipmentStatusPending,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&shipment).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

// UpdateShipment edits carrier/tracking and walks the status forward,
// stamping shipped_at / delivered_at on the matching transitions.
func UpdateShipment(ctx context.Context, shipmentId string, input *UpdateShipmentInput) (*Shipment, error) {
	db := config.GetDB()

	shipment, err := GetShipmentByShipmentId(ctx, shipmentId)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Carrier != nil {
		updates["Carrier"] = *input.Carrier
	}
	if input.TrackingNumber != nil {
		updates["TrackingNumber"] = *input.TrackingNumber
	}
	if input.Status != nil && *input.Status != shipment.Status {
		updates["Status"] = *input.Status
		now := time.Now()
		switch *input.Status {
		case ShipmentStatusInTransit:
			updates["ShippedAt"] = &now
		case ShipmentStatusDelivered:
			if shipment.ShippedAt == nil {
				updates["ShippedAt"] = &now
			}
			updates["DeliveredAt"] = &now
		}
	}
	if len(updates) == 0 {
		return shipment, nil
	}

	if err := db.WithContext(ctx).Model(&shipment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetShipmentByShipmentId(ctx, shipmentId)
}

func DeleteShipment(ctx context.Context, shipmentId string) (*Shipment, error) {
	db := config.GetDB()

	shipment, err := GetShipmentByShipmentId(ctx, shipmentId)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(&Shipment{}, shipment.ID).Error; err != nil {
		return nil, err
	}
	return shipment, nil
}

func GetShipmentByShipmentId(ctx context.Context, shipmentId string) (*Shipment, error) {
	return utils.FetchModelWhere[Shipment](ctx, "shipment_id = ?", []interface{}{shipmentId})
}

func ListShipment(ctx context.Context, billId *string, status *ShipmentStatus) ([]*Shipment, error) {
	db := config.GetDB()
	var results []*Shipment

	dbCtx := db.WithContext(ctx)
	if billId != nil && len(*billId) > 0 {
		dbCtx = dbCtx.Where("bill_id = ?", *billId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
