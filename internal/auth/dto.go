package auth

import (
	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type RegisterDTO struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (d RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(maxUsernameLength)
	v.Field("password", d.Password).Required().Custom(func(value interface{}) *errors.AppError {
		if len(value.(string)) < minPasswordLength {
			return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	if err := v.Validate(); err != nil {
		return err
	}
	if d.Password != d.ConfirmPassword {
		return errors.NewValidationFieldError("confirm_password", "passwords do not match", errors.ErrCodePasswordMismatch)
	}
	return nil
}
