package catalog

import "time"

// Jet status values. Only available jets are exposed to search.
const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusUnavailable = "unavailable"
)

// Jet describes an aircraft in the charter fleet.
type Jet struct {
	ID                  string
	Name                string
	Manufacturer        string
	CategoryID          string
	Year                int
	MaxSpeedMPH         int
	MaxPassengers       int
	PricePerHour        float64
	CabinHeightFt       float64
	CabinWidthFt        float64
	CabinLengthFt       float64
	BaggageCapacityCuFt int
	TakeoffDistanceFt   int
	LandingDistanceFt   int
	FuelCapacityLbs     int
	ImageURL            string
	GalleryURLs         []string
	Features            []string
	Amenities           []string
	Status              string
	RangeNM             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Category groups jets by class (light, midsize, heavy, ...).
type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchFilter narrows a jet search at the repository level. Zero values mean
// "no constraint". CategoryIDs is resolved from a category name by the service.
type SearchFilter struct {
	CategoryIDs   []string
	MinPrice      float64
	MaxPrice      float64
	MinPassengers int
	MinRangeNM    int
}
