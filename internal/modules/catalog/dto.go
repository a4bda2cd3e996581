package catalog

// ---------- BRANDS ----------

type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

type UpdateBrandRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

// ---------- PRODUCTS ----------

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	Photos      []string `json:"photos"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Photos      *[]string `json:"photos,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}
