package dto

import "courier-tracking-service/internal/domain"

// Delays in seconds.
type DelaysResponse struct {
	Configuration float64 `json:"configuration"`
	Map           float64 `json:"map"`
	Path          float64 `json:"path"`
}

type ConfigurationResponse struct {
	Delays  DelaysResponse   `json:"delays"`
	Central LocationResponse `json:"central"`
}

func FromConfiguration(c domain.Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		Delays: DelaysResponse{
			Configuration: c.Delays.Configuration.Seconds(),
			Map:           c.Delays.Map.Seconds(),
			Path:          c.Delays.Path.Seconds(),
		},
		Central: FromLocation(c.Central),
	}
}
