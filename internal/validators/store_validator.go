package validators

import (
	"storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreCreateRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=120"`
	Description   string   `json:"description" validate:"omitempty,max=1000"`
	City          string   `json:"city" validate:"required,min=2,max=100"`
	Address       string   `json:"address" validate:"omitempty,max=255"`
	LocationLat   *float64 `json:"location_lat" validate:"omitempty,latitude"`
	LocationLng   *float64 `json:"location_lng" validate:"omitempty,longitude"`
	DeliveryRange *float64 `json:"delivery_range" validate:"omitempty,delivery_range"`
	DeliveryFee   float64  `json:"delivery_fee" validate:"gte=0"`
	IsActive      *bool    `json:"is_active"`
}

type StoreUpdateRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Description   *string  `json:"description" validate:"omitempty,max=1000"`
	City          *string  `json:"city" validate:"omitempty,min=2,max=100"`
	Address       *string  `json:"address" validate:"omitempty,max=255"`
	LocationLat   *float64 `json:"location_lat" validate:"omitempty,latitude"`
	LocationLng   *float64 `json:"location_lng" validate:"omitempty,longitude"`
	DeliveryRange *float64 `json:"delivery_range" validate:"omitempty,delivery_range"`
	DeliveryFee   *float64 `json:"delivery_fee" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

type ProductCreateRequest struct {
	StoreID     string  `json:"store_id" validate:"required,object_id"`
	CategoryID  string  `json:"category_id" validate:"omitempty,object_id"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool   `json:"is_active"`
}

func ValidateStoreCreate(req *StoreCreateRequest) ValidationErrors {
	errs := ValidateStruct(req)
	if (req.LocationLat == nil) != (req.LocationLng == nil) {
		errs = append(errs, ValidationError{
			Field:   "location_lat",
			Message: "location_lat and location_lng must be given together",
		})
	}
	return errs
}

func ValidateStoreUpdate(req *StoreUpdateRequest) ValidationErrors {
	errs := ValidateStruct(req)
	if (req.LocationLat == nil) != (req.LocationLng == nil) {
		errs = append(errs, ValidationError{
			Field:   "location_lat",
			Message: "location_lat and location_lng must be updated together",
		})
	}
	return errs
}

func (r *StoreCreateRequest) ToModel() *models.Store {
	store := &models.Store{
		Name:          SanitizeInput(r.Name),
		Description:   SanitizeInput(r.Description),
		City:          SanitizeInput(r.City),
		Address:       SanitizeInput(r.Address),
		LocationLat:   r.LocationLat,
		LocationLng:   r.LocationLng,
		DeliveryRange: r.DeliveryRange,
		DeliveryFee:   r.DeliveryFee,
		IsActive:      true,
	}
	if r.IsActive != nil {
		store.IsActive = *r.IsActive
	}
	return store
}

func (r *StoreUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = SanitizeInput(*r.Name)
	}
	if r.Description != nil {
		updates["description"] = SanitizeInput(*r.Description)
	}
	if r.City != nil {
		updates["city"] = SanitizeInput(*r.City)
	}
	if r.Address != nil {
		updates["address"] = SanitizeInput(*r.Address)
	}
	if r.LocationLat != nil {
		updates["location_lat"] = *r.LocationLat
	}
	if r.LocationLng != nil {
		updates["location_lng"] = *r.LocationLng
	}
	if r.DeliveryRange != nil {
		updates["delivery_range"] = *r.DeliveryRange
	}
	if r.DeliveryFee != nil {
		updates["delivery_fee"] = *r.DeliveryFee
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	return updates
}

// ToModel assumes the request already passed ValidateStruct.
func (r *ProductCreateRequest) ToModel() *models.Product {
	storeID, _ := primitive.ObjectIDFromHex(r.StoreID)

	product := &models.Product{
		StoreID:     storeID,
		Name:        SanitizeInput(r.Name),
		Description: SanitizeInput(r.Description),
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		IsActive:    true,
	}
	if r.CategoryID != "" {
		if categoryID, err := primitive.ObjectIDFromHex(r.CategoryID); err == nil {
			product.CategoryID = &categoryID
		}
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	return product
}
