package customer

type CreateCustomerRequest struct {
	Username    string `json:"username" validate:"required,notblank,alphanum,max=50"`
	Password    string `json:"password" validate:"required,password"`
	Email       string `json:"email" validate:"required,email"`
	CityName    string `json:"cityName" validate:"required,notblank"`
	StateName   string `json:"stateName" validate:"required,notblank"`
	CountryName string `json:"countryName" validate:"required,notblank"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Authenticated bool  `json:"authenticated"`
	CustomerID    int64 `json:"customerId"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
