// Package chanmap defines the output channel setups of the upmixer and the
// per-setup speaker allocation grids the spectral synthesizer reads.
//
// Each setup is an ordered speaker list plus, for every speaker, a G×G grid
// of gain coefficients sampled across the soundstage square [-1,1]². The
// grids are built once at process startup from the declarative layouts in
// layouts.go and are read-only afterwards, so they may be shared freely
// between decoder instances.
package chanmap

// Setup enumerates the supported output channel configurations.
type Setup int

const (
	Stereo Setup = iota
	ThreeStereo
	FiveStereo
	FourPointOne
	FivePointOne
	SixPointOne
	SevenPointOne
	SevenPointOnePanorama
	SevenPointOneTricenter
	EightPointOne
	NinePointOneDensePanorama
	NinePointOneWrap
	ElevenPointOneDenseWrap
	ThirteenPointOneTotalWrap
	SixteenPointOne
	Legacy

	NumSetups int = iota
)

// Channel identifies a single output speaker position.
type Channel int

const (
	None Channel = iota
	FrontLeft
	FrontRight
	FrontCenter
	FrontCenterLeft
	FrontCenterRight
	FrontWideLeft
	FrontWideRight
	SideFrontLeft
	SideFrontRight
	SideLeft
	SideRight
	SideBackLeft
	SideBackRight
	BackLeft
	BackRight
	BackCenterLeft
	BackCenterRight
	BackCenter
	LFE
)

// Phase source selectors. Each output channel inherits the phase of the
// left spectrum, the center (summed) spectrum, or the right spectrum.
const (
	PhaseLeft   = -1
	PhaseCenter = 0
	PhaseRight  = 1
)

// Map is a fully built channel map for one setup: the ordered channel list,
// the phase-source selector per channel, and the allocation grids. The LFE
// channel, if the setup has one, occupies the last slot and carries an
// all-zero grid (it is synthesized by the bass redirection band instead).
type Map struct {
	setup    Setup
	channels []Channel
	xsf      []int
	grids    [][][]float64 // [channel][q][p], q indexes y, p indexes x
	gridRes  int
	hasLFE   bool
}

// defaultMaps holds the shared maps with a neutral center image, one per
// setup, built at startup.
var defaultMaps [NumSetups]*Map

func init() {
	for s := Setup(0); int(s) < NumSetups; s++ {
		defaultMaps[s] = build(s, 1)
	}
}

// Valid reports whether s names a defined channel setup.
func Valid(s Setup) bool {
	return s >= 0 && int(s) < NumSetups
}

// For returns the shared, read-only map for the given setup with a neutral
// center image. The caller must not mutate the returned map.
func For(s Setup) *Map {
	return defaultMaps[s]
}

// WithCenterImage returns a map for the same setup with the front-center
// presence folded into the grids at the given level. A level of 1 returns
// the shared default map; other levels build a private copy.
func (m *Map) WithCenterImage(level float64) *Map {
	if level == 1 {
		return defaultMaps[m.setup]
	}
	return build(m.setup, level)
}

// Setup returns the setup this map was built for.
func (m *Map) Setup() Setup { return m.setup }

// NumChannels returns the total number of output channels, including the
// LFE when the setup has one.
func (m *Map) NumChannels() int { return len(m.channels) }

// NumPanned returns the number of channels fed by the allocation grids,
// i.e. all channels except a trailing LFE.
func (m *Map) NumPanned() int {
	if m.hasLFE {
		return len(m.channels) - 1
	}
	return len(m.channels)
}

// HasLFE reports whether the setup ends with an LFE channel.
func (m *Map) HasLFE() bool { return m.hasLFE }

// ChannelAt returns the channel identifier at output slot i, or None when
// i is out of range.
func (m *Map) ChannelAt(i int) Channel {
	if i < 0 || i >= len(m.channels) {
		return None
	}
	return m.channels[i]
}

// PhaseSource returns the phase selector for channel c: PhaseLeft,
// PhaseCenter or PhaseRight.
func (m *Map) PhaseSource(c int) int { return m.xsf[c] }

// GridRes returns the per-side resolution G of the allocation grids.
func (m *Map) GridRes() int { return m.gridRes }

// Grid returns the G×G gain grid of channel c, indexed [q][p].
func (m *Map) Grid(c int) [][]float64 { return m.grids[c] }
