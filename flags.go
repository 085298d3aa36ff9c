package mcanalysis

import (
	"strings"
)

// StringArrayFlags is a repeatable string flag. The first Set replaces any
// default held in Values; later ones append.
type StringArrayFlags struct {
	Values  *[]string
	beenSet bool
}

func (f *StringArrayFlags) Set(value string) error {
	if !f.beenSet {
		f.beenSet = true
		*f.Values = nil
	}

	*f.Values = append(*f.Values, value)
	return nil
}

func (f *StringArrayFlags) String() string {
	if f.Values == nil {
		return ""
	}
	return strings.Join(*f.Values, ",")
}
