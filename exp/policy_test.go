package exp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFor_PrefixConvention(t *testing.T) {
	// cav role iff the identifier starts with "cav"
	assert.Equal(t, RoleCAV, RoleFor("cav_3"))
	assert.Equal(t, RoleCAV, RoleFor("cav"))
	assert.Equal(t, RoleCAV, RoleFor("cavalier"))

	// everything else falls through to the traffic light role
	assert.Equal(t, RoleTL, RoleFor("tl_main"))
	assert.Equal(t, RoleTL, RoleFor("center0"))
	assert.Equal(t, RoleTL, RoleFor(""))
	assert.Equal(t, RoleTL, RoleFor("Cav_3")) // prefix match is case sensitive
}

func TestValidateAgentIDs_AcceptsKnownPrefixes(t *testing.T) {
	ids := []string{"cav_0", "cav_1", "tl_main", "center0", "center11"}
	assert.NoError(t, ValidateAgentIDs(ids))
}

func TestValidateAgentIDs_RejectsUnknownPrefix(t *testing.T) {
	err := ValidateAgentIDs([]string{"cav_0", "ghost_1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ghost_1")
}

func TestValidateAgentIDs_EmptySet(t *testing.T) {
	assert.NoError(t, ValidateAgentIDs(nil))
}
