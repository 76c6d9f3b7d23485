package models

// Path condition reported by the API.
const (
	PathStatusOptimal             = "OPTIMAL"
	PathStatusMedium              = "MEDIUM"
	PathStatusSufficient          = "SUFFICIENT"
	PathStatusRequiresMaintenance = "REQUIRES_MAINTENANCE"
)

// Path is a bike path, either recorded or entered manually.
type Path struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Status      string       `json:"status,omitempty"`
	Distance    float64      `json:"distance,omitempty"`
	Origin      string       `json:"origin,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Coordinates []Coordinate `json:"coordinates,omitempty"`
}

// PathStatuses lists the statuses accepted for manual paths.
var PathStatuses = []string{
	PathStatusOptimal,
	PathStatusMedium,
	PathStatusSufficient,
	PathStatusRequiresMaintenance,
}

// ValidPathStatus reports whether s is one of PathStatuses.
func ValidPathStatus(s string) bool {
	for _, v := range PathStatuses {
		if v == s {
			return true
		}
	}
	return false
}
