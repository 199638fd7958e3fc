package models

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

// Product is the catalog entry a purchase/sale/transfer line must reference.
// Names are matched case-insensitively across service boundaries, so the
// uniqueness check here is case-insensitive too.
type Product struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Name        string          `gorm:"size:100;not null;index" json:"name" binding:"required"`
	Sku         string          `gorm:"size:100" json:"sku"`
	Description string          `gorm:"size:255" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Sku         string          `json:"sku" binding:"omitempty,max=100"`
	Description string          `json:"description" binding:"omitempty,max=255"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Product](ctx, "LOWER(name) = LOWER(?)", input.Name)
	} else {
		count, err = utils.ResourceCountWhere[Product](ctx, "LOWER(name) = LOWER(?) AND NOT id = ?", input.Name, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: duplicate product name", utils.ErrorDuplicateRecord)
	}
	if input.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price cannot be negative", utils.ErrorInvalidInput)
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:        input.Name,
		Sku:         input.Sku,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&product).Error
	if err != nil {
		return nil, err
	}
	// invalidate cached list
	if err := utils.RemoveRedisList[Product](); err != nil {
		config.LogError(config.GetLogger(), "product.go", "CreateProduct", "RemoveRedisList", nil, err)
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&product).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Sku":         input.Sku,
		"Description": input.Description,
		"UnitPrice":   input.UnitPrice,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Product](); err != nil {
		config.LogError(config.GetLogger(), "product.go", "UpdateProduct", "RemoveRedisList", nil, err)
	}
	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	// a product with stock on hand cannot be removed
	var count int64
	if err := db.WithContext(ctx).Model(&InventoryLot{}).
		Where("LOWER(product_name) = LOWER(?) AND quantity > 0", result.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: product has stock", utils.ErrorResourceInUse)
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Product](); err != nil {
		config.LogError(config.GetLogger(), "product.go", "DeleteProduct", "RemoveRedisList", nil, err)
	}
	return result, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return utils.FetchModel[Product](ctx, id)
}

// read product list, redis or db, cache result
func ListProduct(ctx context.Context, name *string) ([]*Product, error) {

	// only the unfiltered list is cached
	if name == nil || *name == "" {
		results, err := utils.RetrieveRedisList[Product]()
		if err != nil {
			return nil, err
		}
		if results != nil {
			return results, nil
		}
	}

	db := config.GetDB()
	var results []*Product

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}

	if name == nil || *name == "" {
		if err := utils.StoreRedisList[Product](results); err != nil {
			config.LogError(config.GetLogger(), "product.go", "ListProduct", "StoreRedisList", nil, err)
		}
	}
	return results, nil
}

// ValidateProductName checks the catalog for a (case-insensitive) name match.
func ValidateProductName(ctx context.Context, name string) error {
	if err := utils.ValidateResourceWhere[Product](ctx, "LOWER(name) = LOWER(?)", name); err != nil {
		return fmt.Errorf("%w: product", utils.ErrorRecordNotFound)
	}
	return nil
}
