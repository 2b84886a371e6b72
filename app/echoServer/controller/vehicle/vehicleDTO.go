package vehicle

type VehicleReq struct {
	Make        string  `json:"make" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"required,gt=1900"`
	Type        string  `json:"type"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gte=0"`
	Available   bool    `json:"availability"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}
