package route

// NetStatus is the routing state of a single net. Routed and Failed are
// terminal for a given trial; a later trial starts every net back at
// Unrouted on a fresh grid.
type NetStatus string

const (
	StatusUnrouted NetStatus = "unrouted"
	StatusRouting  NetStatus = "routing"
	StatusRouted   NetStatus = "routed"
	StatusFailed   NetStatus = "failed"
)

// FailReason explains why a net could not be routed.
type FailReason string

const (
	ReasonNone FailReason = ""
	// NoPathFound means the search space was exhausted without reaching
	// the target.
	NoPathFound FailReason = "no_path_found"
	// SearchBudgetExceeded means the per-net step budget ran out before
	// the search terminated.
	SearchBudgetExceeded FailReason = "search_budget_exceeded"
)

// NetResult is the outcome of routing one net.
type NetResult struct {
	Net         string     // Net name
	Status      NetStatus  // Terminal status
	Reason      FailReason // Failure reason when Status is StatusFailed
	TrackCount  int        // Track segments produced
	ViaCount    int        // Vias produced
	TraceLength float64    // Total trace length in mm
}

// Result is the aggregate outcome of a Monte Carlo routing run. Every
// targeted net appears exactly once in Nets, sorted by net name.
type Result struct {
	Nets         []NetResult
	RoutedCount  int     // Nets fully routed
	TotalCount   int     // Nets targeted
	ViaCount     int     // Total vias committed
	TraceLength  float64 // Total trace length committed, mm
	TrialsRun    int     // Trials actually executed
	WinningTrial int     // Index of the committed trial
	Seed         int64   // Base seed, for reproduction
}

// CompletionPercent returns routed nets as a percentage of targeted
// nets. A run with no targeted nets is 100% complete.
func (r *Result) CompletionPercent() float64 {
	if r.TotalCount == 0 {
		return 100
	}
	return float64(r.RoutedCount) / float64(r.TotalCount) * 100
}

// Failed returns the subset of net results that ended in StatusFailed.
func (r *Result) Failed() []NetResult {
	var failed []NetResult
	for _, n := range r.Nets {
		if n.Status == StatusFailed {
			failed = append(failed, n)
		}
	}
	return failed
}
