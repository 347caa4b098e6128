package models

// GeocodeResult is a single candidate returned by the geocoding provider.
type GeocodeResult struct {
	Types             []string           `json:"types"`
	FormattedAddress  string             `json:"formattedAddress"`
	AddressComponents []AddressComponent `json:"addressComponents"`
	Geometry          Geometry           `json:"geometry"`
	PlaceID           string             `json:"placeId,omitempty"`
	PartialMatch      bool               `json:"partialMatch"`
}

// AddressComponent is one typed part of a formatted address (street number, locality, ...).
type AddressComponent struct {
	LongName  string   `json:"longName"`
	ShortName string   `json:"shortName"`
	Types     []string `json:"types"`
}

// Geometry holds the resolved point and, when known, the area it covers.
type Geometry struct {
	Location     Location `json:"location"`
	LocationType string   `json:"locationType,omitempty"`
	Viewport     *Bounds  `json:"viewport,omitempty"`
	Bounds       *Bounds  `json:"bounds,omitempty"`
}

type Bounds struct {
	Southwest Location `json:"southwest"`
	Northeast Location `json:"northeast"`
}
