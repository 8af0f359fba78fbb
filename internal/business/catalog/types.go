package catalog

import "github.com/shopspring/decimal"

// CatalogRecord 供应商目录中的单个商品
// SKU 在一次目录加载内唯一；Stock 恒为非负
type CatalogRecord struct {
	SKU          string          `json:"supplier_sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Stock        int             `json:"stock"`
	WeightKg     float64         `json:"weight_kg"`
	LengthCm     string          `json:"length_cm"`
	WidthCm      string          `json:"width_cm"`
	HeightCm     string          `json:"height_cm"`
	ImageURL     string          `json:"image_url"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	LeadDays     int             `json:"supplier_lead_days"`
}

// Snapshot 一次加载的目录快照
// Records 保持 CSV 行序；Index 以 SKU 为键（同 SKU 以首行为准）
type Snapshot struct {
	Records []CatalogRecord
	Index   map[string]CatalogRecord
}

// Lookup 按 SKU 查找目录记录
func (s *Snapshot) Lookup(sku string) (CatalogRecord, bool) {
	rec, ok := s.Index[sku]
	return rec, ok
}
