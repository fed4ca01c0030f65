package schemas

import "github.com/JonMunkholm/alcheck/internal/core"

// MeMoonName is the registry key of the MeMoon allowlist sheet.
const MeMoonName = "memoon"

func init() {
	registerMeMoon()
}

// registerMeMoon maps the published MeMoon allowlist sheet. Header names
// must match the export exactly, case aside.
func registerMeMoon() {
	core.Register(core.Schema{
		Name:             MeMoonName,
		IdentifierColumn: "email",
		Flags: []core.FlagSpec{
			{Key: "memoonFirst1000", Column: "MeMoon_First1000", Label: "MeMoon First 1000"},
			{Key: "memoon1000plus", Column: "MeMoon_1000Plus", Label: "MeMoon 1000+"},
			{Key: "chargeAL", Column: "ChargeAL", Label: "Charge AL"},
			{Key: "nftCollabAL", Column: "NFTCollabAL", Label: "NFT Collab AL"},
			{Key: "guildMissionAL", Column: "GuildMissionAL", Label: "Guild Mission AL"},
			{Key: "greetingTapAL", Column: "GreetingTapAL", Label: "Greeting Tap AL"},
		},
	})
}
