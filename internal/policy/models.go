package policy

type Action int

const (
	// Run keeps the test active.
	Run Action = iota
	// Ignore removes the test without a trace.
	Ignore
	// Skip keeps the test but marks it skipped with a reason.
	Skip
)

func (a Action) String() string {
	switch a {
	case Run:
		return "run"
	case Ignore:
		return "ignore"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Disposition is the final decision for a test. Reason is only set for Skip.
type Disposition struct {
	Action Action
	Reason string
}

func RunTest() Disposition {
	return Disposition{Action: Run}
}

func IgnoreTest() Disposition {
	return Disposition{Action: Ignore}
}

func SkipTest(reason string) Disposition {
	return Disposition{Action: Skip, Reason: reason}
}

func (d Disposition) String() string {
	if d.Action == Skip {
		return d.Action.String() + ": " + d.Reason
	}
	return d.Action.String()
}
