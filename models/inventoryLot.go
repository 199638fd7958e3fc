package models

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

// InventoryLot is one stock ledger row: quantity on hand for a
// (lot_id, inventory_location, product_name) tuple. LotId is the mr_id of the
// purchase that brought the batch in; transfers carry the same lot id to the
// destination location so the batch stays traceable across moves.
//
// Quantity must never go below zero. The ledger does not clamp: callers
// validate availability with FindAvailableLot (requesting at least the amount
// they are about to take) before calling DecreaseLotQty, inside the same
// transaction.
type InventoryLot struct {
	ID                int       `gorm:"primary_key" json:"id"`
	LotId             string    `gorm:"size:100;not null;uniqueIndex:idx_lot_location_product" json:"lot_id"`
	InventoryLocation string    `gorm:"size:100;not null;uniqueIndex:idx_lot_location_product" json:"inventory_location"`
	ProductName       string    `gorm:"size:100;not null;uniqueIndex:idx_lot_location_product" json:"product_name"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FindAvailableLot returns the ledger row at inventory for the named product
// with quantity >= minQty, optionally pinned to a specific lot. Absence is a
// business-rule condition, not an error: it returns (nil, nil) and the caller
// decides how to fail. Inventory and product names are matched
// case-insensitively; casing is not consistent across service boundaries.
func FindAvailableLot(tx *gorm.DB, ctx context.Context, inventory string, product string, lotId *string, minQty int) (*InventoryLot, error) {

	dbCtx := tx.WithContext(ctx).
		Where("LOWER(inventory_location) = LOWER(?)", inventory).
		Where("LOWER(product_name) = LOWER(?)", product).
		Where("quantity >= ?", minQty)
	if lotId != nil && *lotId != "" {
		dbCtx = dbCtx.Where("lot_id = ?", *lotId)
	}

	var lot InventoryLot
	err := dbCtx.First(&lot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

// IncreaseLotQty adds qty to a ledger row as a relative column update so
// concurrent transactions cannot lose writes. Runs in the caller's tx.
func IncreaseLotQty(tx *gorm.DB, ctx context.Context, lotRowId int, qty int) error {
	return tx.WithContext(ctx).Model(&InventoryLot{}).
		Where("id = ?", lotRowId).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now(),
		}).Error
}

// DecreaseLotQty subtracts qty from a ledger row. The caller must have
// validated availability via FindAvailableLot in the same transaction.
func DecreaseLotQty(tx *gorm.DB, ctx context.Context, lotRowId int, qty int) error {
	return tx.WithContext(ctx).Model(&InventoryLot{}).
		Where("id = ?", lotRowId).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		}).Error
}

// UpsertDestinationLot increases the ledger row for the tuple when it exists,
// otherwise creates it with qty. Used by the transfer workflow for the
// receiving side of a move.
func UpsertDestinationLot(tx *gorm.DB, ctx context.Context, lotId string, inventory string, product string, qty int) (*InventoryLot, error) {

	var lot InventoryLot
	err := tx.WithContext(ctx).
		Where("lot_id = ?", lotId).
		Where("LOWER(inventory_location) = LOWER(?)", inventory).
		Where("LOWER(product_name) = LOWER(?)", product).
		First(&lot).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		lot = InventoryLot{
			LotId:             lotId,
			InventoryLocation: inventory,
			ProductName:       product,
			Quantity:          qty,
		}
		if err := tx.WithContext(ctx).Create(&lot).Error; err != nil {
			return nil, err
		}
		return &lot, nil
	}

	if err := IncreaseLotQty(tx, ctx, lot.ID, qty); err != nil {
		return nil, err
	}
	lot.Quantity += qty
	return &lot, nil
}

func GetInventoryLot(ctx context.Context, id int) (*InventoryLot, error) {
	return utils.FetchModel[InventoryLot](ctx, id)
}

// GetInventoryLotsByLotId lists every location's row for a lot (mr_id).
func GetInventoryLotsByLotId(ctx context.Context, lotId string) ([]*InventoryLot, error) {
	db := config.GetDB()
	var results []*InventoryLot
	err := db.WithContext(ctx).Where("lot_id = ?", lotId).
		Order("inventory_location, product_name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, utils.ErrorRecordNotFound
	}
	return results, nil
}

func ListInventoryLot(ctx context.Context, inventory *string, product *string) ([]*InventoryLot, error) {
	db := config.GetDB()
	var results []*InventoryLot

	dbCtx := db.WithContext(ctx)
	if inventory != nil && len(*inventory) > 0 {
		dbCtx = dbCtx.Where("LOWER(inventory_location) = LOWER(?)", *inventory)
	}
	if product != nil && len(*product) > 0 {
		dbCtx = dbCtx.Where("LOWER(product_name) = LOWER(?)", *product)
	}
	err := dbCtx.Order("lot_id, inventory_location").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
