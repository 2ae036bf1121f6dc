package models

import "time"

// DefaultCity is applied on read when a product was stored without a
// location. The marketplace launched in Yaoundé and older rows predate
// the field.
const DefaultCity = "Yaoundé"

// DefaultSellerName replaces a blank seller display name in the public
// detail view.
const DefaultSellerName = "Vendeur anonyme"

// ProductDetail is the by-id read shape served to the public detail
// page. Missing optional fields carry defaults so rendering never deals
// with absent data; the thinner list shapes return Product directly.
type ProductDetail struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Price        float64        `json:"price"`
	Description  string         `json:"description"`
	Images       []string       `json:"images"`
	Stock        int            `json:"stock"`
	Unit         *string        `json:"unit"`
	LocationCity string         `json:"location_city"`
	Currency     string         `json:"currency"`
	CategoryID   int            `json:"category_id"`
	IsActive     bool           `json:"is_active"`
	SellerID     string         `json:"seller_id"`
	Seller       *SellerSummary `json:"seller"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewProductDetail builds the detail projection. seller may be nil when
// the reference does not resolve; the view then renders without seller
// contact info.
func NewProductDetail(p *Product, seller *Seller) ProductDetail {
	d := ProductDetail{
		ID:           p.ID.Hex(),
		Title:        p.Title,
		Price:        p.Price,
		Description:  p.Description,
		Images:       p.Images,
		Stock:        p.Stock,
		LocationCity: p.LocationCity,
		Currency:     p.Currency,
		CategoryID:   p.CategoryID,
		IsActive:     p.IsActive,
		SellerID:     p.SellerID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	if p.Unit != "" {
		unit := p.Unit
		d.Unit = &unit
	}
	if d.LocationCity == "" {
		d.LocationCity = DefaultCity
	}
	if seller != nil {
		s := SellerSummary{ID: seller.ID.Hex(), Name: seller.Name}
		if s.Name == "" {
			s.Name = DefaultSellerName
		}
		if seller.Phone != "" {
			phone := seller.Phone
			s.Phone = &phone
		}
		d.Seller = &s
	}
	return d
}
