package timeline

// Event is a single dated entry on a fighter's career timeline.
type Event struct {
	// Date is an opaque label; it is not required to be a calendar date.
	Date string `json:"date"`
	// Title is the short headline shown next to the date.
	Title string `json:"title"`
	// Text is the body of the block and may be empty.
	Text string `json:"text"`
}

// Report describes the outcome of a parse in addition to the events.
type Report struct {
	Events []Event `json:"events"`
	// Blocks counts non-empty candidate blocks found in the input.
	Blocks int `json:"blocks"`
	// Dropped counts blocks that failed to produce an event.
	Dropped int `json:"dropped"`
}
