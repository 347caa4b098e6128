package models

// LocationQuery is the body accepted by the location endpoints: a free-text label and the address to resolve.
type LocationQuery struct {
	Name          string `json:"name"`
	AddressString string `json:"addressString"`
}

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64 `json:"lat" dynamodbav:"lat"`
	Lng float64 `json:"lng" dynamodbav:"lng"`
}

// GaspLocation is the canonical record stored for a named address once the provider returned exactly one match.
type GaspLocation struct {
	ID               string   `json:"-" dynamodbav:"id"`
	Name             string   `json:"name" dynamodbav:"name"`
	FormattedAddress string   `json:"formattedAddress" dynamodbav:"formattedAddress"`
	Location         Location `json:"location" dynamodbav:"location"`
}
