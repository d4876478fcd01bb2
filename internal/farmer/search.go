package farmer

import "strings"

// Search returns the farmers whose name, location or any product contains
// term, ignoring case. A blank term matches everyone. The result is never nil
// and keeps the input order.
func Search(farmers []Farmer, term string) []Farmer {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Farmer, 0, len(farmers))
	for _, f := range farmers {
		if needle == "" || matches(f, needle) {
			out = append(out, f)
		}
	}
	return out
}

func matches(f Farmer, needle string) bool {
	if strings.Contains(strings.ToLower(f.Name), needle) ||
		strings.Contains(strings.ToLower(f.Location), needle) {
		return true
	}
	for _, p := range f.Products {
		if strings.Contains(strings.ToLower(p), needle) {
			return true
		}
	}
	return false
}
