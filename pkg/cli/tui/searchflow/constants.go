package searchflow

// Step constants for the search state machine
const (
	StepInput = iota
	StepRunning
	StepDone
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80

// ResultsHeight is the number of table rows visible at once
const ResultsHeight = 12
