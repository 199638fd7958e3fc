package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

type Vendor struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVendor struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address"`
}

func (input *NewVendor) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Vendor](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if len(strings.TrimSpace(input.Email)) > 0 {
		if !utils.IsValidEmail(input.Email) {
			return fmt.Errorf("%w: invalid email", utils.ErrorInvalidInput)
		}
	}
	return nil
}

func CreateVendor(ctx context.Context, input *NewVendor) (*Vendor, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	vendor := Vendor{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func UpdateVendor(ctx context.Context, id int, input *NewVendor) (*Vendor, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	vendor, err := utils.FetchModel[Vendor](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&vendor).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Email":   input.Email,
		"Phone":   input.Phone,
		"Address": input.Address,
	}).Error
	if err != nil {
		return nil, err
	}

	return vendor, nil
}

func DeleteVendor(ctx context.Context, id int) (*Vendor, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Vendor](ctx, id)
	if err != nil {
		return nil, err
	}

	// a vendor referenced by purchases cannot be removed
	var count int64
	if err := db.WithContext(ctx).Model(&Purchase{}).
		Where("vendor_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: vendor has purchases", utils.ErrorResourceInUse)
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func GetVendor(ctx context.Context, id int) (*Vendor, error) {
	return utils.FetchModel[Vendor](ctx, id)
}

func ListVendor(ctx context.Context, name *string) ([]*Vendor, error) {

	db := config.GetDB()
	var results []*Vendor

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
