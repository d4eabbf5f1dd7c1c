package books

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateCreateBook(req *CreateBookRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&req.Genre,
			validation.Required.Error("genre is required"),
		),
	)
}

func ValidateBookInput(input *BookInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&input.Genre,
			validation.Required.Error("genre is required"),
		),
	)
}

func ValidateAddFields(req *AddFieldsRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Price,
			validation.NotNil.Error("price is required and must be a number"),
		),
		validation.Field(&req.Quantity,
			validation.NotNil.Error("quantity is required and must be a number"),
		),
	)
}
