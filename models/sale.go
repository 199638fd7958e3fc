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

type Sale struct {
	ID              int             `gorm:"primary_key" json:"id"`
	BillId          string          `gorm:"size:100;not null;uniqueIndex" json:"bill_id" binding:"required"`
	CustomerId      int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address"`
	Status          SaleStatus      `gorm:"type:enum('processing','shipped','delivered','cancelled');default:'processing'" json:"status"`
	Adjustment      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"adjustment"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Details         []SaleDetail    `gorm:"foreignKey:SaleId;constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// SaleDetail records which ledger lot the line was fulfilled from.
type SaleDetail struct {
	ID          int              `gorm:"primary_key" json:"id"`
	SaleId      int              `gorm:"index;not null" json:"sale_id"`
	LotId       string           `gorm:"size:100;not null" json:"lot_id"`
	ProductName string           `gorm:"size:100;not null" json:"product_name"`
	Quantity    int              `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	DiscountPct *decimal.Decimal `gorm:"type:decimal(20,4)" json:"discount_pct"`
	LineTotal   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"line_total"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSale struct {
	BillId            string          `json:"bill_id" binding:"required,max=100"`
	CustomerId        int             `json:"customer_id" binding:"required"`
	InventoryLocation string          `json:"inventory_location" binding:"required,max=100"`
	ShippingAddress   string          `json:"shipping_address" binding:"required"`
	Status            SaleStatus      `json:"status" binding:"omitempty,oneof=processing shipped delivered cancelled"`
	Details           []NewSaleDetail `json:"details" binding:"required,min=1,dive"`
}

type NewSaleDetail struct {
	ProductName string           `json:"product_name" binding:"required,max=100"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	DiscountPct *decimal.Decimal `json:"discount_pct"`
}

type UpdateSaleInput struct {
	BillId          *string          `json:"bill_id" binding:"omitempty,max=100"`
	CustomerId      *int             `json:"customer_id"`
	ShippingAddress *string          `json:"shipping_address"`
	Status          *SaleStatus      `json:"status" binding:"omitempty,oneof=processing shipped delivered cancelled"`
	Adjustment      *decimal.Decimal `json:"adjustment"`
}

func (input *NewSale) validate(ctx context.Context) error {
	if err := utils.ValidateUnique[Sale](ctx, "bill_id", input.BillId, 0); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return fmt.Errorf("%w: customer", utils.ErrorRecordNotFound)
	}
	if err := ValidateInventoryName(ctx, input.InventoryLocation); err != nil {
		return fmt.Errorf("%w: inventory", utils.ErrorRecordNotFound)
	}
	for _, detail := range input.Details {
		if detail.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit price cannot be negative", utils.ErrorInvalidInput)
		}
	}
	return nil
}

// CreateSale ships goods from one inventory location to a customer. Each
// line is fulfilled from a ledger row at that location holding at least the
// requested quantity (matched case-insensitively by inventory and product
// name). A missing row means unknown product OR insufficient stock; the two
// are indistinguishable here and both abort the whole transaction.
func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	db := config.GetDB()
	logger := config.GetLogger()
	debug := strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG_SALE")), "true")

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = SaleStatusProcessing
	}

	sale := Sale{
		BillId:          input.BillId,
		CustomerId:      input.CustomerId,
		ShippingAddress: input.ShippingAddress,
		Status:          status,
		TotalAmount:     decimal.Zero,
	}

	tx := db.Begin()

	if err := tx.WithContext(ctx).Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	lineTotals := make([]decimal.Decimal, 0, len(input.Details))

	for _, item := range input.Details {
		lot, err := FindAvailableLot(tx, ctx, input.InventoryLocation, item.ProductName, nil, item.Quantity)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if lot == nil {
			if debug {
				logger.WithFields(logrus.Fields{
					"field":     "CreateSale",
					"bill_id":   input.BillId,
					"inventory": input.InventoryLocation,
					"product":   item.ProductName,
					"requested": item.Quantity,
				}).Info("no available lot; rollback")
			}
			tx.Rollback()
			return nil, fmt.Errorf("%w: no available stock for product %s at %s", utils.ErrorRecordNotFound, item.ProductName, input.InventoryLocation)
		}

		lineTotal := utils.CalculateLineTotal(item.Quantity, item.UnitPrice, item.DiscountPct)
		detail := SaleDetail{
			SaleId:      sale.ID,
			LotId:       lot.LotId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			DiscountPct: item.DiscountPct,
			LineTotal:   lineTotal,
		}
		if err := tx.WithContext(ctx).Create(&detail).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := DecreaseLotQty(tx, ctx, lot.ID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, err
		}

		lineTotals = append(lineTotals, lineTotal)
		sale.Details = append(sale.Details, detail)
	}

	sale.TotalAmount = utils.CalculateOrderTotal(lineTotals)
	if err := tx.WithContext(ctx).Model(&sale).Update("TotalAmount", sale.TotalAmount).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

// UpdateSale edits header fields. The adjustment bound is checked against a
// fresh sum of the persisted lines, not the stored total, so a previous
// adjustment never compounds. Renaming the bill cascades onto every shipment
// referencing the old bill_id, the same way a purchase rename follows its
// ledger rows.
func UpdateSale(ctx context.Context, billId string, input *UpdateSaleInput) (*Sale, error) {
	db := config.GetDB()

	sale, err := GetSaleByBillId(ctx, billId)
	if err != nil {
		return nil, err
	}

	if input.BillId != nil && *input.BillId != sale.BillId {
		if err := utils.ValidateUnique[Sale](ctx, "bill_id", *input.BillId, sale.ID); err != nil {
			return nil, err
		}
	}
	if input.CustomerId != nil {
		if err := utils.ValidateResourceId[Customer](ctx, *input.CustomerId); err != nil {
			return nil, fmt.Errorf("%w: customer", utils.ErrorRecordNotFound)
		}
	}

	adjustment := sale.Adjustment
	if input.Adjustment != nil {
		adjustment = *input.Adjustment
	}

	lineSum, err := computeLineSum(ctx, "sale_details", "sale_id", sale.ID)
	if err != nil {
		return nil, err
	}
	totalAmount, err := utils.ApplyAdjustment(lineSum, adjustment)
	if err != nil {
		return nil, err
	}

	oldBillId := sale.BillId

	updates := map[string]interface{}{
		"Adjustment":  adjustment,
		"TotalAmount": totalAmount,
	}
	newBillId := sale.BillId
	if input.BillId != nil {
		updates["BillId"] = *input.BillId
		newBillId = *input.BillId
	}
	if input.CustomerId != nil {
		updates["CustomerId"] = *input.CustomerId
	}
	if input.ShippingAddress != nil {
		updates["ShippingAddress"] = *input.ShippingAddress
	}
	if input.Status != nil {
		updates["Status"] = *input.Status
	}

	tx := db.Begin()

	if err := tx.WithContext(ctx).Model(&sale).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// keep shipments pointing at the renamed bill
	if newBillId != oldBillId {
		if err := tx.WithContext(ctx).Model(&Shipment{}).
			Where("bill_id = ?", oldBillId).
			Update("bill_id", newBillId).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetSaleByBillId(ctx, newBillId)
}

// DeleteSale removes the header; its lines follow via the FK cascade. A sale
// still referenced by shipments cannot be deleted. Consumed ledger quantity
// is NOT restored: ledger consumption is treated as irreversible here. Known
// gap, kept deliberately; do not add restoration without a product decision.
func DeleteSale(ctx context.Context, billId string) (*Sale, error) {
	db := config.GetDB()

	sale, err := GetSaleByBillId(ctx, billId)
	if err != nil {
		return nil, err
	}

	shipments, err := utils.ResourceCountWhere[Shipment](ctx, "bill_id = ?", sale.BillId)
	if err != nil {
		return nil, err
	}
	if shipments > 0 {
		return nil, fmt.Errorf("%w: sale has shipments", utils.ErrorResourceInUse)
	}

	if err := db.WithContext(ctx).Delete(&Sale{}, sale.ID).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func GetSaleByBillId(ctx context.Context, billId string) (*Sale, error) {
	return utils.FetchModelWhere[Sale](ctx, "bill_id = ?", []interface{}{billId}, "Details")
}

func ListSale(ctx context.Context, billId *string, status *SaleStatus) ([]*Sale, error) {
	db := config.GetDB()
	var results []*Sale

	dbCtx := db.WithContext(ctx).Preload("Details")
	if billId != nil && len(*billId) > 0 {
		dbCtx = dbCtx.Where("bill_id LIKE ?", "%"+*billId+"%")
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
