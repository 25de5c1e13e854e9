package domain

type PathPurpose string

const (
	PathDelivering PathPurpose = "delivering"
	PathReturning  PathPurpose = "returning"
)

// DeliveryPath is the remaining leg of a busy courier: towards its package's
// destination while delivering, back to the hub otherwise.
type DeliveryPath struct {
	CourierID       string
	PackageID       string
	Purpose         PathPurpose
	From            Location
	To              Location
	DistanceMeters  int
	DurationSeconds int
}
