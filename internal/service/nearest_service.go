package service

import (
	"context"
	"errors"
	"fmt"

	"gasp-api/internal/models"
)

// ErrInvalidCoordinates is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// NearestService looks up previously stored locations by proximity.
type NearestService struct {
	repo NearestRepository
}

// NearestRepository interface for dependency injection
type NearestRepository interface {
	FindNearestLocation(ctx context.Context, lat, lng float64) (*models.GaspLocation, error)
}

// NewNearestService creates a new nearest location service
func NewNearestService(repo NearestRepository) *NearestService {
	return &NearestService{repo: repo}
}

// Nearest finds the stored location closest to the given coordinates. It returns (nil, nil) when none is in range.
func (s *NearestService) Nearest(ctx context.Context, lat, lng float64) (*models.GaspLocation, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: latitude %f: %w", lat, ErrInvalidCoordinates)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("service: longitude %f: %w", lng, ErrInvalidCoordinates)
	}

	location, err := s.repo.FindNearestLocation(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest location: %w", err)
	}

	return location, nil
}
