package upmixer

import "github.com/tphakala/go-audio-upmixer/internal/chanmap"

// ChannelSetup enumerates the supported output speaker configurations.
// The ".1" setups end with an LFE channel fed by the optional bass
// redirection band.
type ChannelSetup int

const (
	// Stereo passes the soundstage through to two front speakers.
	Stereo ChannelSetup = iota

	// ThreeStereo adds a discrete front center.
	ThreeStereo

	// FiveStereo spreads the front stage over five speakers.
	FiveStereo

	// FourPointOne is quadraphonic plus LFE.
	FourPointOne

	// FivePointOne is the standard 5.1 surround layout.
	FivePointOne

	// SixPointOne adds a back center to 5.1, with side surrounds.
	SixPointOne

	// SevenPointOne is the standard 7.1 layout with sides and backs.
	SevenPointOne

	// SevenPointOnePanorama stretches seven speakers across the front
	// stage from ear to ear.
	SevenPointOnePanorama

	// SevenPointOneTricenter widens the center image over three closely
	// spaced front-center speakers.
	SevenPointOneTricenter

	// EightPointOne is 7.1 plus a back center.
	EightPointOne

	// NinePointOneDensePanorama is a densely sampled front panorama.
	NinePointOneDensePanorama

	// NinePointOneWrap distributes nine speakers around the listener.
	NinePointOneWrap

	// ElevenPointOneDenseWrap wraps eleven speakers at 30° spacing.
	ElevenPointOneDenseWrap

	// ThirteenPointOneTotalWrap wraps thirteen speakers evenly around
	// the full circle.
	ThirteenPointOneTotalWrap

	// SixteenPointOne wraps sixteen speakers at 22.5° spacing.
	SixteenPointOne

	// Legacy is the historic 5.1 variant with surrounds at ±120°.
	Legacy

	numSetups int = iota
)

// ChannelID identifies one output speaker position within a setup's
// channel order.
type ChannelID int

const (
	ChannelNone ChannelID = iota
	ChannelFrontLeft
	ChannelFrontRight
	ChannelFrontCenter
	ChannelFrontCenterLeft
	ChannelFrontCenterRight
	ChannelFrontWideLeft
	ChannelFrontWideRight
	ChannelSideFrontLeft
	ChannelSideFrontRight
	ChannelSideLeft
	ChannelSideRight
	ChannelSideBackLeft
	ChannelSideBackRight
	ChannelBackLeft
	ChannelBackRight
	ChannelBackCenterLeft
	ChannelBackCenterRight
	ChannelBackCenter
	ChannelLFE
)

var setupNames = [...]string{
	Stereo:                    "stereo",
	ThreeStereo:               "3stereo",
	FiveStereo:                "5stereo",
	FourPointOne:              "4.1",
	FivePointOne:              "5.1",
	SixPointOne:               "6.1",
	SevenPointOne:             "7.1",
	SevenPointOnePanorama:     "7.1 panorama",
	SevenPointOneTricenter:    "7.1 tricenter",
	EightPointOne:             "8.1",
	NinePointOneDensePanorama: "9.1 dense panorama",
	NinePointOneWrap:          "9.1 wrap",
	ElevenPointOneDenseWrap:   "11.1 dense wrap",
	ThirteenPointOneTotalWrap: "13.1 total wrap",
	SixteenPointOne:           "16.1",
	Legacy:                    "legacy",
}

func (s ChannelSetup) String() string {
	if s < 0 || int(s) >= len(setupNames) {
		return "unknown"
	}
	return setupNames[s]
}

// Valid reports whether s names a defined channel setup.
func (s ChannelSetup) Valid() bool {
	return s >= 0 && int(s) < numSetups
}

var channelNames = [...]string{
	ChannelNone:             "none",
	ChannelFrontLeft:        "front left",
	ChannelFrontRight:       "front right",
	ChannelFrontCenter:      "front center",
	ChannelFrontCenterLeft:  "front center left",
	ChannelFrontCenterRight: "front center right",
	ChannelFrontWideLeft:    "front wide left",
	ChannelFrontWideRight:   "front wide right",
	ChannelSideFrontLeft:    "side front left",
	ChannelSideFrontRight:   "side front right",
	ChannelSideLeft:         "side left",
	ChannelSideRight:        "side right",
	ChannelSideBackLeft:     "side back left",
	ChannelSideBackRight:    "side back right",
	ChannelBackLeft:         "back left",
	ChannelBackRight:        "back right",
	ChannelBackCenterLeft:   "back center left",
	ChannelBackCenterRight:  "back center right",
	ChannelBackCenter:       "back center",
	ChannelLFE:              "LFE",
}

func (c ChannelID) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return "unknown"
	}
	return channelNames[c]
}

// NumChannels returns the output channel count of a setup, or 0 for an
// invalid setup.
func NumChannels(s ChannelSetup) int {
	if !s.Valid() {
		return 0
	}
	return chanmap.For(chanmap.Setup(s)).NumChannels()
}

// ChannelAt returns the channel identifier at output slot i of a setup,
// or ChannelNone when the setup or index is out of range.
func ChannelAt(s ChannelSetup, i int) ChannelID {
	if !s.Valid() {
		return ChannelNone
	}
	return ChannelID(chanmap.For(chanmap.Setup(s)).ChannelAt(i))
}

// SetupForChannels picks a sensible setup for a desired output channel
// count from 1 through 8, the way the original streaming wrapper did.
// Counts outside that range return Stereo.
func SetupForChannels(n int) ChannelSetup {
	choices := [...]ChannelSetup{
		Stereo, Stereo, ThreeStereo, FourPointOne,
		FivePointOne, FivePointOne, SixPointOne, SevenPointOne,
	}
	if n < 1 || n > len(choices) {
		return Stereo
	}
	return choices[n-1]
}
