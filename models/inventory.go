package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

// Inventory is a physical stock location. Lot rows reference it by name, and
// that match is case-insensitive everywhere (see FindAvailableLot).
type Inventory struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name" binding:"required"`
	Address   string    `gorm:"type:text" json:"address"`
	City      string    `gorm:"size:100" json:"city"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventory struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address"`
	City    string `json:"city" binding:"omitempty,max=100"`
}

func (input *NewInventory) validate(ctx context.Context, id int) error {
	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[Inventory](ctx, "LOWER(name) = LOWER(?)", input.Name)
	} else {
		count, err = utils.ResourceCountWhere[Inventory](ctx, "LOWER(name) = LOWER(?) AND NOT id = ?", input.Name, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: duplicate inventory name", utils.ErrorDuplicateRecord)
	}
	return nil
}

func CreateInventory(ctx context.Context, input *NewInventory) (*Inventory, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	inventory := Inventory{
		Name:     input.Name,
		Address:  input.Address,
		City:     input.City,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&inventory).Error
	if err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Inventory](); err != nil {
		config.LogError(config.GetLogger(), "inventory.go", "CreateInventory", "RemoveRedisList", nil, err)
	}
	return &inventory, nil
}

func UpdateInventory(ctx context.Context, id int, input *NewInventory) (*Inventory, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	inventory, err := utils.FetchModel[Inventory](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&inventory).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Address": input.Address,
		"City":    input.City,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := utils.RemoveRedisList[Inventory](); err != nil {
		config.LogError(config.GetLogger(), "inventory.go", "UpdateInventory", "RemoveRedisList", nil, err)
	}
	return inventory, nil
}

func DeleteInventory(ctx context.Context, id int) (*Inventory, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Inventory](ctx, id)
	if err != nil {
		return nil, err
	}

	// an inventory holding stock cannot be removed
	var count int64
	if err := db.WithContext(ctx).Model(&InventoryLot{}).
		Where("LOWER(inventory_location) = LOWER(?) AND quantity > 0", result.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: inventory has stock", utils.ErrorResourceInUse)
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Inventory](); err != nil {
		config.LogError(config.GetLogger(), "inventory.go", "DeleteInventory", "RemoveRedisList", nil, err)
	}
	return result, nil
}

func GetInventory(ctx context.Context, id int) (*Inventory, error) {
	return utils.FetchModel[Inventory](ctx, id)
}

// read inventory list, redis or db, cache result
func ListInventory(ctx context.Context, name *string) ([]*Inventory, error) {

	if name == nil || *name == "" {
		results, err := utils.RetrieveRedisList[Inventory]()
		if err != nil {
			return nil, err
		}
		if results != nil {
			return results, nil
		}
	}

	db := config.GetDB()
	var results []*Inventory

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}

	if name == nil || *name == "" {
		if err := utils.StoreRedisList[Inventory](results); err != nil {
			config.LogError(config.GetLogger(), "inventory.go", "ListInventory", "StoreRedisList", nil, err)
		}
	}
	return results, nil
}

// ValidateInventoryName checks a (case-insensitive) stock location exists.
func ValidateInventoryName(ctx context.Context, name string) error {
	if err := utils.ValidateResourceWhere[Inventory](ctx, "LOWER(name) = LOWER(?)", name); err != nil {
		return fmt.Errorf("%w: inventory", utils.ErrorRecordNotFound)
	}
	return nil
}
