package provision

import "strings"

// Request is the input of one provisioning run. The worker runs on the
// normalized copy and never modifies it after the run starts.
type Request struct {
	// Folder is the existing target directory.
	Folder string
	// Selected are the checked catalog packages, in display order.
	Selected []string
	// Additional are the free-text packages, in the order typed.
	Additional []string
}

// ParseAdditional splits the free-text packages field on commas, trims each
// entry, and drops empty ones: "numpy, ,pandas" yields [numpy pandas].
func ParseAdditional(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Normalize returns a copy with surrounding whitespace removed from every
// name and blank names dropped. Duplicates are kept.
func (r Request) Normalize() Request {
	return Request{
		Folder:     strings.TrimSpace(r.Folder),
		Selected:   compact(r.Selected),
		Additional: compact(r.Additional),
	}
}

// Packages returns Selected followed by Additional.
func (r Request) Packages() []string {
	out := make([]string, 0, len(r.Selected)+len(r.Additional))
	out = append(out, r.Selected...)
	return append(out, r.Additional...)
}

// TotalSteps is the fixed progress total: navigate, venv-create, and one step
// per package. Call it on a normalized request.
func (r Request) TotalSteps() int {
	return fixedSteps + len(r.Selected) + len(r.Additional)
}

func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
