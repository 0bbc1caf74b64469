package catalog

type Brand struct {
	BrandID   int64  `json:"brandId"`
	BrandName string `json:"brandName"`
}

type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}
