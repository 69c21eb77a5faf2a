// Package assets places the fixed security-team roster on ranked chokepoints.
package assets

import (
	"fmt"
	"sort"

	"github.com/jengzang/chokepoint-planner/internal/models"
)

// Role templates in binding order.
var (
	SDTRoles = []string{
		"Advance team: reconnaissance and early road closure at the highest-risk chokepoint.",
		"Static protection team securing approaches to a high-risk chokepoint.",
		"Rear security team covering potential follow-up attacks near a critical chokepoint.",
		"Escort team integrated in the motorcade to respond at chokepoints.",
		"Reserve team positioned to reinforce any chokepoint if threatened.",
		"Quick reaction force covering alternative evacuation routes.",
	}
	CSRoles = []string{
		"Counter-sniper overwatch on the single most vulnerable chokepoint.",
		"Counter-sniper team covering the primary conference venue approach.",
		"Counter-sniper team covering the reception venue and surrounding access routes.",
	}
)

// Rank orders chokepoints by vulnerability, highest first. Ties are broken by
// ID so the order does not depend on map iteration.
func Rank(chokepoints map[string]*models.Chokepoint) []*models.Chokepoint {
	ranked := make([]*models.Chokepoint, 0, len(chokepoints))
	for _, cp := range chokepoints {
		ranked = append(ranked, cp)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].VulnerabilityScore != ranked[j].VulnerabilityScore {
			return ranked[i].VulnerabilityScore > ranked[j].VulnerabilityScore
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// Allocate returns exactly len(SDTRoles) SDT and len(CSRoles) CS placements.
// Team i of each roster binds to the i-th ranked chokepoint, or to the top
// chokepoint when there are fewer chokepoints than teams. Without chokepoints
// every team is placed at (0, 0) unassigned.
func Allocate(chokepoints map[string]*models.Chokepoint) map[string]*models.SecurityTeamPlacement {
	ranked := Rank(chokepoints)
	teams := make(map[string]*models.SecurityTeamPlacement, len(SDTRoles)+len(CSRoles))
	for _, roster := range []struct {
		kind  models.TeamType
		roles []string
	}{
		{models.TeamTypeSDT, SDTRoles},
		{models.TeamTypeCS, CSRoles},
	} {
		for i, role := range roster.roles {
			team := &models.SecurityTeamPlacement{
				ID:              fmt.Sprintf("%s%d", roster.kind, i+1),
				Type:            roster.kind,
				RoleDescription: role,
			}
			if cp := bind(ranked, i); cp != nil {
				id := cp.ID
				team.Location = cp.Location
				team.AssignedTo = &id
			}
			teams[team.ID] = team
		}
	}
	return teams
}

func bind(ranked []*models.Chokepoint, i int) *models.Chokepoint {
	switch {
	case i < len(ranked):
		return ranked[i]
	case len(ranked) > 0:
		return ranked[0]
	default:
		return nil
	}
}
