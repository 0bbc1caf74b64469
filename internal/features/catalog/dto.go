package catalog

type CreateBrandRequest struct {
	BrandName string `json:"brandName" validate:"required,notblank,max=100"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required,notblank,max=100"`
}
