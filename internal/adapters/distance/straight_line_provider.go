package distance

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/ports"
	"math"
)

const earthRadiusMeters = 6371000.0

// StraightLineProvider estimates distance as the great-circle distance and
// duration at a constant speed. It is used when no routing API key is set.
type StraightLineProvider struct {
	// Speed in meters per second.
	Speed float64
}

// Roughly 30 km/h, a courier in city traffic.
const DefaultCourierSpeed = 8.33

func NewStraightLineProvider(speed float64) StraightLineProvider {
	if speed <= 0 {
		speed = DefaultCourierSpeed
	}
	return StraightLineProvider{Speed: speed}
}

func (p StraightLineProvider) GetDistance(
	ctx context.Context,
	origin domain.Location,
	destination domain.Location,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}

	meters := Haversine(origin, destination)
	speed := p.Speed
	if speed <= 0 {
		speed = DefaultCourierSpeed
	}

	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(meters / speed)),
	}, nil
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b domain.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
