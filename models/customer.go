package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	City      string    `gorm:"size:100" json:"city"`
	Country   string    `gorm:"size:100" json:"country"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address"`
	City    string `json:"city" binding:"omitempty,max=100"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

// validate input for both create & update. (id = 0 for create)

func (input *NewCustomer) validate(ctx context.Context, id int) error {
	// name
	if err := utils.ValidateUnique[Customer](ctx, "name", input.Name, id); err != nil {
		return err
	}
	// email
	if len(strings.TrimSpace(input.Email)) > 0 {
		if !utils.IsValidEmail(input.Email) {
			return fmt.Errorf("%w: invalid email", utils.ErrorInvalidInput)
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		City:     input.City,
		Country:  input.Country,
		IsActive: utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&customer).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Email":   input.Email,
		"Phone":   input.Phone,
		"Address": input.Address,
		"City":    input.City,
		"Country": input.Country,
	}).Error
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	// a customer referenced by sales cannot be removed
	var count int64
	if err := db.WithContext(ctx).Model(&Sale{}).
		Where("customer_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: customer has sales", utils.ErrorResourceInUse)
	}

	// db action
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchModel[Customer](ctx, id)
}

func ListCustomer(ctx context.Context, name *string) ([]*Customer, error) {

	db := config.GetDB()
	var results []*Customer

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	// db query
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
