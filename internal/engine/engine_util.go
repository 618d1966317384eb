package engine

func NewBoard(defaults *Defaults, policy PolicyKind) Board {
	if defaults == nil {
		defaults = StandardDefaults
	}
	b := Board{
		Rotation: 0,
		Profile:  ProfileWide,
		Policy:   ParsePolicy(string(policy)),
		defaults: defaults,
	}
	for _, p := range Profiles {
		b.Live[p.index()] = defaults.Table(p)
	}
	return b
}

func NewStandardBoard() Board {
	return NewBoard(StandardDefaults, PolicySnap)
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// Reduce replays events on top of start.
func Reduce(start Board, events []Event) Board {
	b := start
	for _, event := range events {
		switch event.Type {
		case EvtPlayerMoved:
			idx := event.Profile.index()
			if t, err := ApplyDrag(b.Live[idx], event.Rotation, event.Team, event.Slot, event.Position); err == nil {
				b.Live[idx] = t
			}
		case EvtRotationReset:
			idx := event.Profile.index()
			b.Live[idx] = ResetRotation(b.Live[idx], b.defaultsOrStandard().Table(event.Profile), event.Rotation)
		case EvtRotationChanged:
			b.Rotation = WrapRotation(event.Rotation)
		case EvtProfileChanged:
			b.Profile = event.Profile
		case EvtPolicyChanged:
			b.Policy = event.Policy
		}
	}
	return b
}
