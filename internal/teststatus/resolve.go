package teststatus

import "muster/internal/testgraph"

// ScheduledSetView is the narrow read interface the scheduler exposes to the
// status resolver. Keeping this as an interface (rather than depending on
// the scheduler's concrete type) mirrors the narrow-collaborator-interface
// pattern used throughout this codebase: a component depends on the
// smallest slice of another component's surface it actually needs.
type ScheduledSetView interface {
	IsScheduled(def *testgraph.Definition) bool
}

// DetermineStatus resolves the Status of n. For a leaf node (Definition !=
// nil, no children) it applies the table from spec.md 4.3. For a non-leaf
// node, it is the Max, under Status's ordering, of the node's own status (if
// it carries a Definition) and each child's status.
func (s *Store) DetermineStatus(n *testgraph.Node, scheduled ScheduledSetView) Status {
	if len(n.Children) == 0 {
		return s.determineLeafStatus(n, scheduled)
	}

	status := Passed
	if n.Definition != nil {
		status = status.Max(s.determineLeafStatus(n, scheduled))
	}
	for _, child := range n.Children {
		status = status.Max(s.DetermineStatus(child, scheduled))
	}
	return status
}

func (s *Store) determineLeafStatus(n *testgraph.Node, scheduled ScheduledSetView) Status {
	result, ok := s.Fetch(n)

	isScheduled := n.Definition != nil && scheduled != nil && scheduled.IsScheduled(n.Definition)

	if !ok {
		if isScheduled {
			return WaitingToRun
		}
		return NotRun
	}

	switch {
	case isScheduled && result.Start == 0:
		return WaitingToRun
	case isScheduled && result.End == 0:
		return Running
	case result.End == 0:
		return NotRun
	case result.Failure != nil:
		return Failed
	default:
		return Passed
	}
}
