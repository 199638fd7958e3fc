package models

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

type Purchase struct {
	ID                int              `gorm:"primary_key" json:"id"`
	MrId              string           `gorm:"size:100;not null;uniqueIndex" json:"mr_id" binding:"required"`
	VendorId          int              `gorm:"index;not null" json:"vendor_id" binding:"required"`
	InventoryLocation string           `gorm:"size:100;not null" json:"inventory_location" binding:"required"`
	Adjustment        decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"adjustment"`
	TotalPrice        decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_price"`
	Details           []PurchaseDetail `gorm:"foreignKey:PurchaseId;constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseDetail struct {
	ID          int              `gorm:"primary_key" json:"id"`
	PurchaseId  int              `gorm:"index;not null" json:"purchase_id"`
	ProductName string           `gorm:"size:100;not null" json:"product_name"`
	Quantity    int              `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	DiscountPct *decimal.Decimal `gorm:"type:decimal(20,4)" json:"discount_pct"`
	LineTotal   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"line_total"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchase struct {
	MrId              string              `json:"mr_id" binding:"required,max=100"`
	VendorId          int                 `json:"vendor_id" binding:"required"`
	InventoryLocation string              `json:"inventory_location" binding:"required,max=100"`
	Details           []NewPurchaseDetail `json:"details" binding:"required,min=1,dive"`
}

type NewPurchaseDetail struct {
	ProductName string           `json:"product_name" binding:"required,max=100"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	DiscountPct *decimal.Decimal `json:"discount_pct"`
}

// UpdatePurchase carries partial header edits. Nil means "leave unchanged".
type UpdatePurchaseInput struct {
	MrId              *string          `json:"mr_id" binding:"omitempty,max=100"`
	VendorId          *int             `json:"vendor_id"`
	InventoryLocation *string          `json:"inventory_location" binding:"omitempty,max=100"`
	Adjustment        *decimal.Decimal `json:"adjustment"`
}

func (input *NewPurchase) validate(ctx context.Context) error {
	// mr_id is the external batch reference shared with the stock ledger
	if err := utils.ValidateUnique[Purchase](ctx, "mr_id", input.MrId, 0); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Vendor](ctx, input.VendorId); err != nil {
		return fmt.Errorf("%w: vendor", utils.ErrorRecordNotFound)
	}
	if err := ValidateInventoryName(ctx, input.InventoryLocation); err != nil {
		return fmt.Errorf("%w: inventory", utils.ErrorRecordNotFound)
	}
	if len(input.Details) == 0 {
		return fmt.Errorf("%w: purchase requires at least one line", utils.ErrorInvalidInput)
	}
	for _, detail := range input.Details {
		if err := ValidateProductName(ctx, detail.ProductName); err != nil {
			return fmt.Errorf("%w: product %s", utils.ErrorRecordNotFound, detail.ProductName)
		}
		if detail.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit price cannot be negative", utils.ErrorInvalidInput)
		}
	}
	return nil
}

// CreatePurchase receives goods from a vendor into one inventory location:
// header + lines + fresh ledger rows keyed by mr_id, all in one transaction.
// A purchase never merges into an existing lot; the unique
// (lot_id, location, product) index turns a duplicate product line into a
// constraint violation that aborts the whole operation.
func CreatePurchase(ctx context.Context, input *NewPurchase) (*Purchase, error) {
	db := config.GetDB()
	logger := config.GetLogger()
	debug := strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG_PURCHASE")), "true")

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	var details []PurchaseDetail
	lineTotals := make([]decimal.Decimal, 0, len(input.Details))

	for _, item := range input.Details {
		lineTotal := utils.CalculateLineTotal(item.Quantity, item.UnitPrice, item.DiscountPct)
		details = append(details, PurchaseDetail{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			DiscountPct: item.DiscountPct,
			LineTotal:   lineTotal,
		})
		lineTotals = append(lineTotals, lineTotal)
	}

	purchase := Purchase{
		MrId:              input.MrId,
		VendorId:          input.VendorId,
		InventoryLocation: input.InventoryLocation,
		TotalPrice:        decimal.Zero,
		Details:           details,
	}

	if debug {
		logger.WithFields(logrus.Fields{
			"field":         "CreatePurchase",
			"mr_id":         purchase.MrId,
			"inventory":     purchase.InventoryLocation,
			"details_count": len(input.Details),
		}).Info("begin purchase create")
	}

	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&purchase).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// one fresh ledger row per line, keyed by the purchase's mr_id
	for _, detail := range purchase.Details {
		lot := InventoryLot{
			LotId:             purchase.MrId,
			InventoryLocation: purchase.InventoryLocation,
			ProductName:       detail.ProductName,
			Quantity:          detail.Quantity,
		}
		if err := tx.WithContext(ctx).Create(&lot).Error; err != nil {
			config.LogError(logger, "purchase.go", "CreatePurchase", "create lot "+detail.ProductName, nil, err)
			tx.Rollback()
			return nil, err
		}
		if debug {
			logger.WithFields(logrus.Fields{
				"field":    "CreatePurchase",
				"mr_id":    purchase.MrId,
				"product":  detail.ProductName,
				"quantity": detail.Quantity,
			}).Info("ledger row created")
		}
	}

	purchase.TotalPrice = utils.CalculateOrderTotal(lineTotals)
	if err := tx.WithContext(ctx).Model(&purchase).Update("TotalPrice", purchase.TotalPrice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if debug {
		logger.WithFields(logrus.Fields{
			"field": "CreatePurchase",
			"mr_id": purchase.MrId,
		}).Info("purchase committed")
	}

	return &purchase, nil
}

// UpdatePurchase edits header fields. The adjustment bound is always checked
// against the current line sum, never against the previously stored (already
// adjusted) total, so repeated edits cannot compound. Changing the inventory
// location cascades onto every ledger row tagged with this mr_id: the stock
// is retroactively relocated.
func UpdatePurchase(ctx context.Context, mrId string, input *UpdatePurchaseInput) (*Purchase, error) {
	db := config.GetDB()

	purchase, err := GetPurchaseByMrId(ctx, mrId)
	if err != nil {
		return nil, err
	}

	if input.MrId != nil && *input.MrId != purchase.MrId {
		if err := utils.ValidateUnique[Purchase](ctx, "mr_id", *input.MrId, purchase.ID); err != nil {
			return nil, err
		}
	}
	if input.VendorId != nil {
		if err := utils.ValidateResourceId[Vendor](ctx, *input.VendorId); err != nil {
			return nil, fmt.Errorf("%w: vendor", utils.ErrorRecordNotFound)
		}
	}
	if input.InventoryLocation != nil {
		if err := ValidateInventoryName(ctx, *input.InventoryLocation); err != nil {
			return nil, fmt.Errorf("%w: inventory", utils.ErrorRecordNotFound)
		}
	}

	oldMrId := purchase.MrId

	adjustment := purchase.Adjustment
	if input.Adjustment != nil {
		adjustment = *input.Adjustment
	}

	lineSum, err := computeLineSum(ctx, "purchase_details", "purchase_id", purchase.ID)
	if err != nil {
		return nil, err
	}
	totalPrice, err := utils.ApplyAdjustment(lineSum, adjustment)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"Adjustment": adjustment,
		"TotalPrice": totalPrice,
	}
	if input.MrId != nil {
		updates["MrId"] = *input.MrId
	}
	if input.VendorId != nil {
		updates["VendorId"] = *input.VendorId
	}
	if input.InventoryLocation != nil {
		updates["InventoryLocation"] = *input.InventoryLocation
	}

	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&purchase).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// relocate the purchase's stock when the location or lot key changes
	newLotId := oldMrId
	if input.MrId != nil {
		newLotId = *input.MrId
	}
	if input.InventoryLocation != nil || input.MrId != nil {
		lotUpdates := map[string]interface{}{}
		if input.InventoryLocation != nil {
			lotUpdates["inventory_location"] = *input.InventoryLocation
		}
		if input.MrId != nil {
			lotUpdates["lot_id"] = newLotId
		}
		if err := tx.WithContext(ctx).Model(&InventoryLot{}).
			Where("lot_id = ?", oldMrId).
			Updates(lotUpdates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetPurchaseByMrId(ctx, newLotId)
}

// DeletePurchase removes the header; its lines follow via the FK cascade.
// Ledger rows created by the purchase are intentionally left in place;
// cleanup is tracked separately and must not be added here silently.
func DeletePurchase(ctx context.Context, mrId string) (*Purchase, error) {
	db := config.GetDB()

	purchase, err := GetPurchaseByMrId(ctx, mrId)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(&Purchase{}, purchase.ID).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

func GetPurchaseByMrId(ctx context.Context, mrId string) (*Purchase, error) {
	return utils.FetchModelWhere[Purchase](ctx, "mr_id = ?", []interface{}{mrId}, "Details")
}

func ListPurchase(ctx context.Context, mrId *string) ([]*Purchase, error) {
	db := config.GetDB()
	var results []*Purchase

	dbCtx := db.WithContext(ctx).Preload("Details")
	if mrId != nil && len(*mrId) > 0 {
		dbCtx = dbCtx.Where("mr_id LIKE ?", "%"+*mrId+"%")
	}
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// computeLineSum re-sums persisted line totals for an order header. Header
// totals are always derived from this, never from the stored total.
func computeLineSum(ctx context.Context, table string, fkColumn string, headerId int) (decimal.Decimal, error) {
	db := config.GetDB()
	var sum decimal.Decimal
	err := db.WithContext(ctx).Table(table).
		Where(fkColumn+" = ?", headerId).
		Select("COALESCE(SUM(line_total), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
