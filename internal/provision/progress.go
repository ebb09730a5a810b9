package provision

// fixedSteps counts the navigate and venv-create steps.
const fixedSteps = 2

// Progress counts completed steps against a total fixed at construction.
type Progress struct {
	completed int
	total     int
}

// NewProgress returns a counter for total steps. A non-positive total is
// treated as one so percentages stay defined.
func NewProgress(total int) *Progress {
	if total < 1 {
		total = 1
	}
	return &Progress{total: total}
}

// Advance records one completed step. The count never exceeds the total.
func (p *Progress) Advance() {
	if p.completed < p.total {
		p.completed++
	}
}

// Completed returns the number of completed steps.
func (p *Progress) Completed() int { return p.completed }

// Total returns the fixed step total.
func (p *Progress) Total() int { return p.total }

// Percent returns floor(completed*100/total).
func (p *Progress) Percent() int {
	return p.completed * 100 / p.total
}
