package models

type Product struct {
	Id            string   `bson:"_id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Slug          string   `bson:"slug" json:"slug"`
	Description   string   `bson:"description" json:"description"`
	UnitOfMeasure string   `bson:"unitOfMeasure" json:"unitOfMeasure"`
	Category      string   `bson:"category,omitempty" json:"category,omitempty"`
	ImageUrl      string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	UnitPrice     *float64 `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	IsDisabled    bool     `bson:"isDisabled" json:"isDisabled"`
}
