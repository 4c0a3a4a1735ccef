package domain

// Block is a half-open [Start, End) slice of an area's operating window.
type Block struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

type Availability struct {
	AreaID     string  `json:"area_id"`
	AreaName   string  `json:"area"`
	Date       string  `json:"date"`
	DayEnabled bool    `json:"day_enabled"`
	Message    string  `json:"message,omitempty"`
	Free       []Block `json:"free"`
	Occupied   []Block `json:"occupied"`
}
