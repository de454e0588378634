package bloom

import "strings"

// DefaultExpansion is the expansion rate RedisBloom uses when none is given.
const DefaultExpansion int64 = 2

// Normalized Info keys.
const (
	InfoCapacity        = "CAPACITY"
	InfoSize            = "SIZE"
	InfoNumberOfFilters = "NUMBER_OF_FILTERS"
	InfoNumberOfItems   = "NUMBER_OF_ITEMS"
	InfoExpansionRate   = "EXPANSION_RATE"
)

// infoLabels maps BF.INFO reply labels, lowercased, to normalized keys.
var infoLabels = map[string]string{
	"capacity":                 InfoCapacity,
	"size":                     InfoSize,
	"number of filters":        InfoNumberOfFilters,
	"number of items inserted": InfoNumberOfItems,
	"expansion rate":           InfoExpansionRate,
}

func normalizeInfoLabel(label string) string {
	if key, ok := infoLabels[strings.ToLower(label)]; ok {
		return key
	}
	return label
}

// Info is the decoded BF.INFO reply.
type Info map[string]int64

func (i Info) Capacity() int64        { return i[InfoCapacity] }
func (i Info) Size() int64            { return i[InfoSize] }
func (i Info) NumberOfFilters() int64 { return i[InfoNumberOfFilters] }
func (i Info) NumberOfItems() int64   { return i[InfoNumberOfItems] }
func (i Info) ExpansionRate() int64   { return i[InfoExpansionRate] }

// InfoAttr selects a single BF.INFO attribute.
type InfoAttr string

const (
	AttrCapacity  InfoAttr = "CAPACITY"
	AttrSize      InfoAttr = "SIZE"
	AttrFilters   InfoAttr = "FILTERS"
	AttrItems     InfoAttr = "ITEMS"
	AttrExpansion InfoAttr = "EXPANSION"
)

func (a InfoAttr) valid() bool {
	switch a {
	case AttrCapacity, AttrSize, AttrFilters, AttrItems, AttrExpansion:
		return true
	}
	return false
}

// InsertFlag is a BF.INSERT behavior token.
type InsertFlag string

const (
	// FlagNoCreate fails the insert instead of creating a missing filter.
	FlagNoCreate InsertFlag = "NOCREATE"
	// FlagNonScaling creates the filter without sub-filter scaling.
	FlagNonScaling InsertFlag = "NONSCALING"
)

func (f InsertFlag) valid() bool {
	return f == FlagNoCreate || f == FlagNonScaling
}

// InsertOptions configures BF.INSERT. Zero numeric fields are omitted.
type InsertOptions struct {
	Capacity  int64
	ErrorRate float64
	Expansion int64
	Flags     []InsertFlag
	Items     []string
}

// Chunk is one BF.SCANDUMP step. Iterator 0 ends the scan.
type Chunk struct {
	Iterator int64
	Data     []byte
}

// Done reports whether the scan is exhausted.
func (c Chunk) Done() bool {
	return c.Iterator == 0
}
