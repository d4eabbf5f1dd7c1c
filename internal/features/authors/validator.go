package authors

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateCreateAuthor(req *CreateAuthorRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&req.BirthYear,
			validation.NotNil.Error("birth_year is required"),
		),
	)
}
