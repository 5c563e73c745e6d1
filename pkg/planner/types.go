package planner

// Destination holds the concrete paths computed for one manifest target.
type Destination struct {
	LocalDir   string
	LocalFile  string
	RemoteFile string
}
