// Package exploration implements exploration policies which decide
// whether an agent should explore its environment or exploit what it
// has learned so far.
package exploration

// Choice is the decision made by an exploration policy
type Choice int

const (
	Exploit Choice = iota
	Explore
)

func (c Choice) String() string {
	if c == Explore {
		return "Explore"
	}
	return "Exploit"
}
