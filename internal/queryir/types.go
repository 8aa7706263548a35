package queryir

// Query represents an abstract trace query.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in backend
// compilers.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition over one step.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Steps selects the steps of a single run, optionally filtered. Results
// are always in sequence order; there is no way to express an unordered
// query.
type Steps struct {
	// RunToken identifies the run. Required.
	RunToken string

	// Filter is an optional predicate; nil means all steps.
	Filter Predicate
}

func (Steps) queryNode() {}

// KindIs matches steps of one kind ("split" or "simplify").
type KindIs struct {
	Kind string
}

func (KindIs) predicateNode() {}

// OutcomeIs matches steps with one exact outcome name.
type OutcomeIs struct {
	Outcome string
}

func (OutcomeIs) predicateNode() {}

// RuleContains matches steps whose rule rendering contains the given
// substring. Field names are substrings of the rendering, so this is how
// a caller asks "which steps touched cell b3".
type RuleContains struct {
	Substring string
}

func (RuleContains) predicateNode() {}

// And matches steps satisfying every member predicate.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
