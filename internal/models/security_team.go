package models

// TeamType is the roster category of a security team.
type TeamType string

// TeamType constants
const (
	TeamTypeSDT TeamType = "SDT"
	TeamTypeCS  TeamType = "CS"
)

// SecurityTeamPlacement assigns one team to a location.
type SecurityTeamPlacement struct {
	ID              string   `json:"id"`
	Type            TeamType `json:"type"`
	Location        LatLon   `json:"location"`
	AssignedTo      *string  `json:"assigned_to"`
	RoleDescription string   `json:"role_description"`
}
