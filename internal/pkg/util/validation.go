package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// FieldError 字段级校验错误，Field 指向出错的表单字段
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// ValidateDTO 结构体规则校验，失败时原样返回 validator 错误交由响应层归类
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
