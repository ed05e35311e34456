package types

// Specifications describes the configurable options a product offers,
// keyed by option name (e.g. "paper_size" -> ["A4", "A3"]).
type Specifications map[string][]string

// SelectedOptions captures the option choices a customer made for one
// cart or order line (e.g. "paper_size" -> "A4").
type SelectedOptions map[string]string

// Option returns the values offered for an option name.
func (s Specifications) Option(name string) ([]string, bool) {
	values, ok := s[name]
	return values, ok
}

// Allows reports whether the selected value is offered for the option.
func (s Specifications) Allows(name, value string) bool {
	values, ok := s[name]
	if !ok {
		return false
	}
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
