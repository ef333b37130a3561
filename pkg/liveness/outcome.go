package liveness

// Outcome is the unified liveness decision a signal maps to.
type Outcome uint8

const (
	// OutcomeInactive indicates the source stopped being capturable.
	OutcomeInactive Outcome = iota

	// OutcomeActive indicates the source became capturable.
	OutcomeActive
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeInactive:
		return "INACTIVE"
	case OutcomeActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Host signal names the router understands.
const (
	SignalHooked     = "hooked"
	SignalUnhooked   = "unhooked"
	SignalActivate   = "activate"
	SignalDeactivate = "deactivate"
	SignalShow       = "show"
	SignalHide       = "hide"
)

// binding pairs a signal name with the outcome it maps to.
// Slices (not maps) keep registration order deterministic.
type binding struct {
	signal  string
	outcome Outcome
}

// hookBindings are wired only when hook signals are preferred.
var hookBindings = []binding{
	{SignalHooked, OutcomeActive},
	{SignalUnhooked, OutcomeInactive},
}

// baseBindings are wired unconditionally for every source kind.
var baseBindings = []binding{
	{SignalActivate, OutcomeActive},
	{SignalDeactivate, OutcomeInactive},
	{SignalShow, OutcomeActive},
	{SignalHide, OutcomeInactive},
}

// OutcomeForSignal returns the outcome a signal name maps to.
// Returns false for signal names the router does not route.
func OutcomeForSignal(signal string) (Outcome, bool) {
	for _, b := range hookBindings {
		if b.signal == signal {
			return b.outcome, true
		}
	}
	for _, b := range baseBindings {
		if b.signal == signal {
			return b.outcome, true
		}
	}
	return OutcomeInactive, false
}
