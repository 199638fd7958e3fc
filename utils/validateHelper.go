package utils

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
)

// check if id exists, return RecordNotFound error
func ValidateResourceId[T any](ctx context.Context, id interface{}) error {

	count, err := ResourceCountWhere[T](ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

// check if a record exists where column = value (case-insensitive), return RecordNotFound error
func ValidateResourceWhere[T any](ctx context.Context, condition string, value ...interface{}) error {

	count, err := ResourceCountWhere[T](ctx, condition, value...)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

// check column = value does not collide with another row, return ErrorDuplicateRecord.
// exceptId excludes the row being updated (pass 0 for create).
func ValidateUnique[T any](ctx context.Context, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: duplicate %s", ErrorDuplicateRecord, column)
	}
	return nil
}

// count records matching $condition
func ResourceCountWhere[T any](ctx context.Context, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FormatValidationErrors renders validator/v10 field errors into
// client-correctable per-field messages.
func FormatValidationErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be %s or more", field, fe.Param()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return messages
}
