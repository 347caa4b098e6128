package service

import "gasp-api/internal/models"

// toResolvedLocation extracts the coordinates of a provider result. No range checks are applied.
func toResolvedLocation(result models.GeocodeResult) models.Location {
	return models.Location{
		Lat: result.Geometry.Location.Lat,
		Lng: result.Geometry.Location.Lng,
	}
}

func toGaspLocation(id, name string, result models.GeocodeResult) models.GaspLocation {
	return models.GaspLocation{
		ID:               id,
		Name:             name,
		FormattedAddress: result.FormattedAddress,
		Location:         toResolvedLocation(result),
	}
}
