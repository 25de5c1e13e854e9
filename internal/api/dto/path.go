package dto

import "courier-tracking-service/internal/domain"

type PathResponse struct {
	CourierID       string           `json:"courierId"`
	PackageID       *string          `json:"packageId"`
	Purpose         string           `json:"purpose"`
	From            LocationResponse `json:"from"`
	To              LocationResponse `json:"to"`
	DistanceMeters  int              `json:"distanceMeters"`
	DurationSeconds int              `json:"durationSeconds"`
}

type ListPathsResponse struct {
	Paths []PathResponse `json:"paths"`
}

func FromPaths(paths []domain.DeliveryPath) ListPathsResponse {
	res := ListPathsResponse{Paths: make([]PathResponse, 0, len(paths))}
	for _, p := range paths {
		res.Paths = append(res.Paths, PathResponse{
			CourierID:       p.CourierID,
			PackageID:       optional(p.PackageID),
			Purpose:         string(p.Purpose),
			From:            FromLocation(p.From),
			To:              FromLocation(p.To),
			DistanceMeters:  p.DistanceMeters,
			DurationSeconds: p.DurationSeconds,
		})
	}
	return res
}
