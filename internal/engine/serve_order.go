package engine

const (
	SlotCount     = 6
	RotationCount = 6
)

// BaseOrder puts roster slot i in court position i+1 for the first rotation.
var BaseOrder = Lineup{0, 1, 2, 3, 4, 5}

// Court positions 2, 3 and 4. The rest are back row.
var frontRow = [SlotCount]bool{
	1: true,
	2: true,
	3: true,
}

func IsFrontRow(slot int) bool {
	if slot < 0 || slot >= SlotCount {
		return false
	}
	return frontRow[slot]
}
