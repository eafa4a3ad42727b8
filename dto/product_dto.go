package dto

type CreateProductDTO struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	UnitOfMeasure string   `json:"unitOfMeasure" binding:"required"`
	Category      string   `json:"category"`
	UnitPrice     *float64 `json:"unitPrice"`
}

type UpdateProductDTO struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	UnitOfMeasure *string  `json:"unitOfMeasure"`
	Category      *string  `json:"category"`
	UnitPrice     *float64 `json:"unitPrice"`
	IsDisabled    *bool    `json:"isDisabled"`
}
