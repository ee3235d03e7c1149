package spec

import "strconv"

// DefaultFragmentAttr is the host attribute prefix fragments are read from:
// extra-test0, extra-test1, ...
const DefaultFragmentAttr = "extra-test"

// AttrLookup resolves a host attribute by name.
type AttrLookup func(name string) (string, bool)

// ReadFragments collects fragments from prefix0, prefix1, ... stopping at the
// first missing index.
func ReadFragments(lookup AttrLookup, prefix string) []string {
	if lookup == nil {
		return nil
	}
	if prefix == "" {
		prefix = DefaultFragmentAttr
	}
	var out []string
	for i := 0; ; i++ {
		value, ok := lookup(prefix + strconv.Itoa(i))
		if !ok {
			return out
		}
		out = append(out, value)
	}
}

// FragmentAttrs is the inverse of ReadFragments, handy for building hosts.
func FragmentAttrs(prefix string, fragments []string) map[string]string {
	if prefix == "" {
		prefix = DefaultFragmentAttr
	}
	out := make(map[string]string, len(fragments))
	for i, fragment := range fragments {
		out[prefix+strconv.Itoa(i)] = fragment
	}
	return out
}
