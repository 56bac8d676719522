package watershed

import "fmt"

// State is the flooding state of a pixel.
type State uint8

const (
	// Init marks a pixel whose level has not been reached yet.
	Init State = iota
	// Mask marks a pixel of the current level waiting to be reached.
	Mask
	// InQueue marks a pixel queued for propagation.
	InQueue
	// Watershed marks a pixel where two basins meet.
	Watershed
	// Region marks a pixel that belongs to a basin; see Label.ID.
	Region
)

var stateNames = [...]string{"init", "mask", "inqueue", "wshed", "region"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Label is either a transient flooding state, a watershed line or a region
// id. ID is meaningful only when State is Region.
type Label struct {
	State State
	ID    uint32
}

// RegionLabel returns the label of region id.
func RegionLabel(id uint32) Label { return Label{State: Region, ID: id} }

// WatershedLabel is the label of a watershed line pixel.
var WatershedLabel = Label{State: Watershed}

// IsRegion reports whether l names a basin.
func (l Label) IsRegion() bool { return l.State == Region }

// Final reports whether l is a watershed line or a region.
func (l Label) Final() bool { return l.State == Watershed || l.State == Region }

// Value is the numeric form used in label images: the region id, or 0 for a
// watershed line. Transient states have no numeric form.
func (l Label) Value() (uint32, bool) {
	switch l.State {
	case Region:
		return l.ID, true
	case Watershed:
		return 0, true
	}
	return 0, false
}

func (l Label) String() string {
	if l.State == Region {
		return fmt.Sprintf("region %d", l.ID)
	}
	return l.State.String()
}
