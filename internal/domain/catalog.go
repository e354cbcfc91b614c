package domain

// ProductVariant is a variant joined with the product fields the shipping
// screens need. StoreID comes from the owning product.
type ProductVariant struct {
	ID               string   `json:"id"`
	ProductID        string   `json:"productId"`
	StoreID          string   `json:"storeId"`
	SKU              string   `json:"sku,omitempty"`
	Title            string   `json:"title,omitempty"`
	ProductTitle     string   `json:"productTitle"`
	ProductImageURLs []string `json:"productImageUrls"`
}
