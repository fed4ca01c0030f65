package schemas

import (
	"testing"

	"github.com/JonMunkholm/alcheck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeMoonRegistered(t *testing.T) {
	s, err := core.LookupSchema(DefaultName)
	require.NoError(t, err)

	assert.Equal(t, "email", s.IdentifierColumn)
	assert.Equal(t, []string{
		"memoonFirst1000", "memoon1000plus", "chargeAL",
		"nftCollabAL", "guildMissionAL", "greetingTapAL",
	}, s.FlagKeys())
	assert.NoError(t, s.Validate())
}
