package domain

// EngineSizeBand is one of six fixed engine-capacity ranges used to look up
// per-size rates. Band values double as the keys of the rate configuration
// document, so they must not be renamed without migrating stored documents.
type EngineSizeBand string

const (
	BandUpTo1200   EngineSizeBand = "0cc-1200cc"
	Band1201To1500 EngineSizeBand = "1201cc-1500cc"
	Band1501To2000 EngineSizeBand = "1501cc-2000cc"
	Band2001To2400 EngineSizeBand = "2001cc-2400cc"
	Band2401To3500 EngineSizeBand = "2401cc-3500cc"
	BandAbove3500  EngineSizeBand = "3501cc or above"
)

// AllBands lists the bands in ascending capacity order.
var AllBands = []EngineSizeBand{
	BandUpTo1200,
	Band1201To1500,
	Band1501To2000,
	Band2001To2400,
	Band2401To3500,
	BandAbove3500,
}

// BandForCapacity maps an engine capacity in cc to its band. Upper bounds are
// inclusive and the last band is open-ended, so the mapping is total for any
// non-negative capacity.
func BandForCapacity(cc int) EngineSizeBand {
	switch {
	case cc <= 1200:
		return BandUpTo1200
	case cc <= 1500:
		return Band1201To1500
	case cc <= 2000:
		return Band1501To2000
	case cc <= 2400:
		return Band2001To2400
	case cc <= 3500:
		return Band2401To3500
	default:
		return BandAbove3500
	}
}
