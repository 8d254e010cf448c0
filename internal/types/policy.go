package types

// Policy selects the objective function the Problem Builder emits.
type Policy string

const (
	PolicyLazy    Policy = "lazy"
	PolicyUpgrade Policy = "upgrade"
)
