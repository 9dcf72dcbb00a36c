package cellid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLocationBlock = `termAttempt Version=2
timestamp=20250604035420.132Z
location[0]=
locationType=cellTowerLocation
locationData=utran-cell-id-3gpp=311480550414df40c
timestamp=20250604035420.132Z
location[1]=
locationType=cellTowerLocation
locationData=utran-cell-id-3gpp=311480550414df40d
associateMedia=
sdp=v=0
`

func TestParseLocations_SubBlocks(t *testing.T) {
	locs := ParseLocations(twoLocationBlock, "20250604035420.132Z")
	require.Len(t, locs, 2)

	assert.Equal(t, "cellTowerLocation", locs[0].Type)
	require.NotNil(t, locs[0].Parsed)
	assert.Equal(t, "311480550414df40c", locs[0].Parsed.FullCellID)
	assert.Equal(t, "20250604035420.132Z", locs[0].Timestamp)

	require.NotNil(t, locs[1].Parsed)
	assert.Equal(t, "311480550414df40d", locs[1].Parsed.FullCellID)
	// No timestamp of its own: inherits the record timestamp.
	assert.Equal(t, "20250604035420.132Z", locs[1].Timestamp)
}

func TestParseLocations_RejectsIncompleteSubBlock(t *testing.T) {
	block := `answer Version=2
location[0]=
locationType=cellTowerLocation
answering=
uri[0]=sip:+15551234567@ims.example.net
`
	// locationData missing, and no top-level cell id to fall back to.
	locs := ParseLocations(block, "")
	assert.Empty(t, locs)
}

func TestParseLocations_FallbackFromHeader(t *testing.T) {
	block := `release Version=2
timestamp=20250604040001.000Z
utran-cell-id-3gpp=311480550414df40c
cause=
signalingType=normalRelease
`
	locs := ParseLocations(block, "20250604040001.000Z")
	require.Len(t, locs, 1)

	assert.Equal(t, LocationTypeHeaderDerived, locs[0].Type)
	assert.Equal(t, "311480550414df40c", locs[0].RawData)
	require.NotNil(t, locs[0].Parsed)
	assert.Equal(t, "311", locs[0].Parsed.MCC)
	assert.Equal(t, "20250604040001.000Z", locs[0].Timestamp)
}

func TestFromHeaderValue(t *testing.T) {
	loc, ok := FromHeaderValue(`3GPP-E-UTRAN-FDD; utran-cell-id-3gpp=311480550414df40c`, "20250604035421.000Z")
	require.True(t, ok)
	assert.Equal(t, LocationTypeAccessNetwork, loc.Type)
	require.NotNil(t, loc.Parsed)
	assert.Equal(t, "21764-21886988", loc.Parsed.CompositeKey())
	assert.Equal(t, "20250604035421.000Z", loc.Timestamp)

	_, ok = FromHeaderValue("3GPP-E-UTRAN-FDD", "")
	assert.False(t, ok)
}
