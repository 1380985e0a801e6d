package exp

import (
	"fmt"
	"strings"
)

// Role is one of the two learning-agent categories. All agents of a role
// share that role's policy definition.
type Role string

const (
	RoleCAV Role = "cav" // connected autonomous vehicle controller
	RoleTL  Role = "tl"  // traffic light controller
)

// RoleFor routes an agent identifier to its policy role. Identifiers with
// the "cav" prefix belong to the CAV policy; everything else falls through
// to the traffic light policy.
func RoleFor(agentID string) Role {
	if strings.HasPrefix(agentID, "cav") {
		return RoleCAV
	}
	return RoleTL
}

// tlPrefixes are the identifier prefixes the grid environment emits for
// traffic light agents.
var tlPrefixes = []string{"tl", "center"}

// ValidateAgentIDs checks that every identifier the environment produces
// matches exactly one known role prefix. RoleFor itself is total, so an
// unknown identifier would otherwise be routed to the traffic light policy
// silently; this surfaces it as a configuration error before launch.
func ValidateAgentIDs(ids []string) error {
	for _, id := range ids {
		if strings.HasPrefix(id, "cav") {
			continue
		}
		matched := false
		for _, p := range tlPrefixes {
			if strings.HasPrefix(id, p) {
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("agent id %q matches no policy role prefix", id)
		}
	}
	return nil
}
