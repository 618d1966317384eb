package engine

// Lineup maps court slot -> roster index.
type Lineup [SlotCount]int

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func WrapRotation(r int) int {
	return wrap(r, RotationCount)
}

// RotateLeft shifts base r places so that out[slot] = base[(slot+r) mod 6].
func RotateLeft(base Lineup, r int) Lineup {
	var out Lineup
	for slot := range out {
		out[slot] = base[wrap(slot+r, SlotCount)]
	}
	return out
}

func (l Lineup) SlotOf(rosterIndex int) int {
	if rosterIndex < 0 {
		return -1
	}
	for slot, idx := range l {
		if idx == rosterIndex {
			return slot
		}
	}
	return -1
}

// Substitute swaps the middle blocker with the libero when the middle
// blocker would start in the back row. Missing players make it a no-op.
func Substitute(l Lineup, mb, libero int) Lineup {
	mbSlot := l.SlotOf(mb)
	if mbSlot < 0 || IsFrontRow(mbSlot) {
		return l
	}
	lSlot := l.SlotOf(libero)
	if lSlot < 0 {
		return l
	}
	l[mbSlot], l[lSlot] = l[lSlot], l[mbSlot]
	return l
}

func GenerateRotations(base Lineup, mb, libero int) [RotationCount]Lineup {
	var out [RotationCount]Lineup
	for r := range out {
		out[r] = Substitute(RotateLeft(base, r), mb, libero)
	}
	return out
}
