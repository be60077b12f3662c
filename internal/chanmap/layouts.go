package chanmap

// speaker places one output channel on the soundstage by its azimuth in
// degrees: 0 is front center, negative is left, positive is right, ±180 is
// directly behind the listener.
type speaker struct {
	ch      Channel
	azimuth float64
}

// layout is the declarative description a setup's grids are generated from.
// Setups with nine or more panned speakers get the finer grid so that
// adjacent speakers stay resolvable in the interpolation.
type layout struct {
	speakers []speaker
	withLFE  bool
	gridRes  int
}

const (
	gridResCoarse = 16
	gridResFine   = 32
)

// layouts defines every supported setup. The speaker order here is the
// output channel order; the LFE, when enabled, is appended last.
var layouts = [NumSetups]layout{
	Stereo: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontRight, 45},
		},
		gridRes: gridResCoarse,
	},
	ThreeStereo: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
		},
		gridRes: gridResCoarse,
	},
	FiveStereo: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenterLeft, -22.5}, {FrontCenter, 0},
			{FrontCenterRight, 22.5}, {FrontRight, 45},
		},
		gridRes: gridResCoarse,
	},
	FourPointOne: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontRight, 45},
			{BackLeft, -135}, {BackRight, 135},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	FivePointOne: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
			{BackLeft, -135}, {BackRight, 135},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	SixPointOne: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
			{SideLeft, -90}, {SideRight, 90}, {BackCenter, 180},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	SevenPointOne: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
			{SideLeft, -90}, {SideRight, 90},
			{BackLeft, -135}, {BackRight, 135},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	SevenPointOnePanorama: {
		// The whole front stage stretched from ear to ear.
		speakers: []speaker{
			{FrontWideLeft, -90}, {FrontLeft, -60}, {FrontCenterLeft, -30},
			{FrontCenter, 0},
			{FrontCenterRight, 30}, {FrontRight, 60}, {FrontWideRight, 90},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	SevenPointOneTricenter: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenterLeft, -15}, {FrontCenter, 0},
			{FrontCenterRight, 15}, {FrontRight, 45},
			{BackLeft, -135}, {BackRight, 135},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	EightPointOne: {
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
			{SideLeft, -90}, {SideRight, 90},
			{BackLeft, -135}, {BackRight, 135}, {BackCenter, 180},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
	NinePointOneDensePanorama: {
		speakers: []speaker{
			{FrontWideLeft, -90}, {SideFrontLeft, -67.5}, {FrontLeft, -45},
			{FrontCenterLeft, -22.5}, {FrontCenter, 0}, {FrontCenterRight, 22.5},
			{FrontRight, 45}, {SideFrontRight, 67.5}, {FrontWideRight, 90},
		},
		withLFE: true,
		gridRes: gridResFine,
	},
	NinePointOneWrap: {
		speakers: []speaker{
			{FrontCenter, 0}, {FrontLeft, -40}, {FrontRight, 40},
			{SideLeft, -80}, {SideRight, 80},
			{BackLeft, -120}, {BackRight, 120},
			{BackCenterLeft, -160}, {BackCenterRight, 160},
		},
		withLFE: true,
		gridRes: gridResFine,
	},
	ElevenPointOneDenseWrap: {
		speakers: []speaker{
			{FrontCenter, 0}, {FrontCenterLeft, -30}, {FrontCenterRight, 30},
			{FrontLeft, -60}, {FrontRight, 60},
			{SideLeft, -90}, {SideRight, 90},
			{SideBackLeft, -120}, {SideBackRight, 120},
			{BackLeft, -150}, {BackRight, 150},
		},
		withLFE: true,
		gridRes: gridResFine,
	},
	ThirteenPointOneTotalWrap: {
		// Thirteen speakers at equal 360/13 degree spacing.
		speakers: []speaker{
			{FrontCenter, 0}, {FrontCenterLeft, -27.6923}, {FrontCenterRight, 27.6923},
			{FrontLeft, -55.3846}, {FrontRight, 55.3846},
			{SideLeft, -83.0769}, {SideRight, 83.0769},
			{SideBackLeft, -110.7692}, {SideBackRight, 110.7692},
			{BackLeft, -138.4615}, {BackRight, 138.4615},
			{BackCenterLeft, -166.1538}, {BackCenterRight, 166.1538},
		},
		withLFE: true,
		gridRes: gridResFine,
	},
	SixteenPointOne: {
		// Sixteen speakers at equal 22.5 degree spacing around the full circle.
		speakers: []speaker{
			{FrontCenter, 0}, {FrontCenterLeft, -22.5}, {FrontCenterRight, 22.5},
			{FrontLeft, -45}, {FrontRight, 45},
			{SideFrontLeft, -67.5}, {SideFrontRight, 67.5},
			{SideLeft, -90}, {SideRight, 90},
			{SideBackLeft, -112.5}, {SideBackRight, 112.5},
			{BackLeft, -135}, {BackRight, 135},
			{BackCenterLeft, -157.5}, {BackCenterRight, 157.5},
			{BackCenter, 180},
		},
		withLFE: true,
		gridRes: gridResFine,
	},
	Legacy: {
		// The historic default: 5.1 with the surrounds pulled in to ±120.
		speakers: []speaker{
			{FrontLeft, -45}, {FrontCenter, 0}, {FrontRight, 45},
			{BackLeft, -120}, {BackRight, 120},
		},
		withLFE: true,
		gridRes: gridResCoarse,
	},
}

// phaseSourceFor derives the phase selector from speaker placement: left
// hemisphere speakers track the left input phase, right hemisphere speakers
// the right, and speakers on the median plane the summed center phase.
func phaseSourceFor(azimuth float64) int {
	switch {
	case azimuth == 0 || azimuth == 180 || azimuth == -180:
		return PhaseCenter
	case azimuth < 0:
		return PhaseLeft
	default:
		return PhaseRight
	}
}
