package customer

type Customer struct {
	CustomerID   int64  `json:"customerId"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	CityID       int64  `json:"cityId"`
	StateID      int64  `json:"stateId"`
	CountryID    int64  `json:"countryId"`
}

// LocationKind names one of the reference tables a customer address points
// into.
type LocationKind string

const (
	Cities    LocationKind = "cities"
	States    LocationKind = "states"
	Countries LocationKind = "countries"
)

type locationTable struct {
	idColumn   string
	nameColumn string
}

var locationTables = map[LocationKind]locationTable{
	Cities:    {idColumn: "city_id", nameColumn: "city_name"},
	States:    {idColumn: "state_id", nameColumn: "state_name"},
	Countries: {idColumn: "country_id", nameColumn: "country_name"},
}
