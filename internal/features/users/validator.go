package users

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateCreateUser enforces field presence and value constraints before
// anything touches the store. Type mismatches (non-numeric index/age/phone,
// non-boolean isActive) are already rejected at JSON bind time.
func ValidateCreateUser(req *CreateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Index, validation.NotNil.Error("index is required and must be a number")),
		validation.Field(&req.Name, validation.Required.Error("name is required")),
		validation.Field(&req.IsActive, validation.NotNil.Error("isActive is required and must be a boolean")),
		validation.Field(&req.Registered, validation.NotNil.Error("registered is required")),
		validation.Field(&req.Age, validation.NotNil.Error("age is required and must be a number")),
		validation.Field(&req.Gender,
			validation.Required.Error("gender is required"),
			validation.In("male", "female", "other").Error("gender must be one of male, female or other"),
		),
		validation.Field(&req.EyeColor, validation.Required.Error("eyeColor is required")),
		validation.Field(&req.FavoriteFruit, validation.Required.Error("favoriteFruit is required")),
		validation.Field(&req.Title, validation.Required.Error("company title is required")),
		validation.Field(&req.Email,
			validation.Required.Error("company email is required"),
			is.Email.Error("company email must be a valid email address"),
		),
		validation.Field(&req.Phone, validation.NotNil.Error("phone is required and must be a number")),
		validation.Field(&req.Country, validation.Required.Error("country is required")),
		validation.Field(&req.Address, validation.Required.Error("address is required")),
		validation.Field(&req.Tags,
			validation.Required.Error("please provide a valid tags array"),
			validation.Length(1, 0).Error("please provide a valid tags array"),
		),
	)
}
