package models

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

type Transfer struct {
	ID                   int              `gorm:"primary_key" json:"id"`
	TrfId                string           `gorm:"size:100;not null;uniqueIndex" json:"trf_id" binding:"required"`
	SourceInventory      string           `gorm:"size:100;not null" json:"source_inventory" binding:"required"`
	DestinationInventory string           `gorm:"size:100;not null" json:"destination_inventory" binding:"required"`
	Details              []TransferDetail `gorm:"foreignKey:TransferId;constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type TransferDetail struct {
	ID          int       `gorm:"primary_key" json:"id"`
	TransferId  int       `gorm:"index;not null" json:"transfer_id"`
	LotId       string    `gorm:"size:100;not null" json:"lot_id"`
	ProductName string    `gorm:"size:100;not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransfer struct {
	TrfId                string              `json:"trf_id" binding:"required,max=100"`
	SourceInventory      string              `json:"source_inventory" binding:"required,max=100"`
	DestinationInventory string              `json:"destination_inventory" binding:"required,max=100"`
	Details              []NewTransferDetail `json:"details" binding:"required,min=1,dive"`
}

type NewTransferDetail struct {
	LotId       string `json:"lot_id" binding:"required,max=100"`
	ProductName string `json:"product_name" binding:"required,max=100"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateTransferInput only renames the business key. A transfer carries no
// money and its ledger effects are fixed at creation.
type UpdateTransferInput struct {
	TrfId string `json:"trf_id" binding:"required,max=100"`
}

func (input *NewTransfer) validate(ctx context.Context) error {
	if utils.SameName(input.SourceInventory, input.DestinationInventory) {
		return fmt.Errorf("%w: transfers cannot be made within the same inventory", utils.ErrorInvalidInput)
	}
	if err := utils.ValidateUnique[Transfer](ctx, "trf_id", input.TrfId, 0); err != nil {
		return err
	}
	if err := ValidateInventoryName(ctx, input.SourceInventory); err != nil {
		return fmt.Errorf("%w: source inventory", utils.ErrorRecordNotFound)
	}
	if err := ValidateInventoryName(ctx, input.DestinationInventory); err != nil {
		return fmt.Errorf("%w: destination inventory", utils.ErrorRecordNotFound)
	}
	return nil
}

// CreateTransfer moves lots from a source inventory to a destination. Each
// line decrements the source ledger row (which must hold at least the
// requested quantity for that lot/product) and increments or creates the
// destination row for the same tuple, so system-wide quantity for the
// lot/product nets to zero.
func CreateTransfer(ctx context.Context, input *NewTransfer) (*Transfer, error) {
	db := config.GetDB()
	logger := config.GetLogger()
	debug := strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG_TRANSFER")), "true")

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	transfer := Transfer{
		TrfId:                input.TrfId,
		SourceInventory:      input.SourceInventory,
		DestinationInventory: input.DestinationInventory,
	}

	if debug {
		logger.WithFields(logrus.Fields{
			"field":                 "CreateTransfer",
			"trf_id":                transfer.TrfId,
			"source_inventory":      transfer.SourceInventory,
			"destination_inventory": transfer.DestinationInventory,
			"details_count":         len(input.Details),
		}).Info("begin transfer create")
	}

	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&transfer).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range input.Details {
		lotId := item.LotId
		sourceLot, err := FindAvailableLot(tx, ctx, input.SourceInventory, item.ProductName, &lotId, item.Quantity)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if sourceLot == nil {
			if debug {
				logger.WithFields(logrus.Fields{
					"field":     "CreateTransfer",
					"trf_id":    transfer.TrfId,
					"lot_id":    item.LotId,
					"product":   item.ProductName,
					"requested": item.Quantity,
				}).Info("no available source lot; rollback")
			}
			tx.Rollback()
			return nil, fmt.Errorf("%w: no available stock for lot %s product %s at %s", utils.ErrorRecordNotFound, item.LotId, item.ProductName, input.SourceInventory)
		}

		if err := DecreaseLotQty(tx, ctx, sourceLot.ID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := UpsertDestinationLot(tx, ctx, item.LotId, input.DestinationInventory, item.ProductName, item.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}

		detail := TransferDetail{
			TransferId:  transfer.ID,
			LotId:       item.LotId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if err := tx.WithContext(ctx).Create(&detail).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		transfer.Details = append(transfer.Details, detail)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if debug {
		logger.WithFields(logrus.Fields{
			"field":  "CreateTransfer",
			"trf_id": transfer.TrfId,
		}).Info("transfer committed")
	}

	return &transfer, nil
}

// UpdateTransfer is a pure rename of the business key; no ledger effect.
func UpdateTransfer(ctx context.Context, trfId string, input *UpdateTransferInput) (*Transfer, error) {
	db := config.GetDB()

	transfer, err := GetTransferByTrfId(ctx, trfId)
	if err != nil {
		return nil, err
	}

	if input.TrfId != transfer.TrfId {
		if err := utils.ValidateUnique[Transfer](ctx, "trf_id", input.TrfId, transfer.ID); err != nil {
			return nil, err
		}
	}

	if err := db.WithContext(ctx).Model(&transfer).Update("TrfId", input.TrfId).Error; err != nil {
		return nil, err
	}

	return GetTransferByTrfId(ctx, input.TrfId)
}

// DeleteTransfer reverses every line by reading the destination's CURRENT
// quantity for the lot/product and moving that full amount back to the
// source, then drops lines and header. If the destination row was touched by
// another operation since the transfer, the amount moved back will differ
// from the originally transferred quantity. Documented behavior; pending a
// product decision this must not be changed to replay the original quantity.
func DeleteTransfer(ctx context.Context, trfId string) (*Transfer, error) {
	db := config.GetDB()
	logger := config.GetLogger()
	debug := strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG_TRANSFER")), "true")

	transfer, err := GetTransferByTrfId(ctx, trfId)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()

	for _, detail := range transfer.Details {
		lotId := detail.LotId
		destLot, err := FindAvailableLot(tx, ctx, transfer.DestinationInventory, detail.ProductName, &lotId, 0)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if destLot == nil || destLot.Quantity == 0 {
			// nothing left at the destination to move back
			continue
		}

		if debug {
			logger.WithFields(logrus.Fields{
				"field":         "DeleteTransfer",
				"trf_id":        transfer.TrfId,
				"lot_id":        detail.LotId,
				"product":       detail.ProductName,
				"moving_back":   destLot.Quantity,
				"original_sent": detail.Quantity,
			}).Info("reversing transfer line")
		}

		if err := DecreaseLotQty(tx, ctx, destLot.ID, destLot.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := UpsertDestinationLot(tx, ctx, detail.LotId, transfer.SourceInventory, detail.ProductName, destLot.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.WithContext(ctx).Where("transfer_id = ?", transfer.ID).Delete(&TransferDetail{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&Transfer{}, transfer.ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return transfer, nil
}

func GetTransferByTrfId(ctx context.Context, trfId string) (*Transfer, error) {
	return utils.FetchModelWhere[Transfer](ctx, "trf_id = ?", []interface{}{trfId}, "Details")
}

func ListTransfer(ctx context.Context, trfId *string) ([]*Transfer, error) {
	db := config.GetDB()
	var results []*Transfer

	dbCtx := db.WithContext(ctx).Preload("Details")
	if trfId != nil && len(*trfId) > 0 {
		dbCtx = dbCtx.Where("trf_id LIKE ?", "%"+*trfId+"%")
	}
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
