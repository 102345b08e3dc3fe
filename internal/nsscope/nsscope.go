// Package nsscope tracks the namespace prefix bindings currently in
// scope while walking a document whose tokens have had their
// prefixes resolved away. The reading engine reports names with the
// namespace URI substituted for the prefix; reconstructing the
// qualified name means remembering which prefix each xmlns
// declaration bound, per element scope, and looking the URI back up
// innermost-first.
package nsscope

// Binding pairs a namespace prefix with the URI it is bound to. The
// empty prefix is the default namespace.
type Binding struct {
	prefix string
	uri    string
}

func (b Binding) Prefix() string {
	return b.prefix
}

func (b Binding) URI() string {
	return b.uri
}

// Stack holds the bindings in scope. Push opens one scope per
// element, Bind records the element's xmlns declarations into it,
// and Pop closes the scope when the element does. Bindings recorded
// before the first Push live for the whole document (the built-in
// xml prefix goes there).
type Stack struct {
	items []Binding
	marks []int
}

func (s *Stack) Push() {
	s.marks = append(s.marks, len(s.items))
}

func (s *Stack) Bind(prefix, uri string) {
	s.items = append(s.items, Binding{prefix: prefix, uri: uri})
}

func (s *Stack) Pop() {
	if len(s.marks) == 0 {
		return
	}
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	s.items = s.items[:mark]

	if c := cap(s.items); c > 32 && c > len(s.items)*2 {
		s.items = append([]Binding(nil), s.items...)
	}
}

// PrefixOf reports the innermost prefix bound to uri, skipping
// bindings whose prefix has been rebound to a different URI by a
// deeper scope.
func (s *Stack) PrefixOf(uri string) (string, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		b := s.items[i]
		if b.uri != uri {
			continue
		}
		if s.rebound(b.prefix, i) {
			continue
		}
		return b.prefix, true
	}
	return "", false
}

// URIOf reports the innermost URI bound to prefix.
func (s *Stack) URIOf(prefix string) (string, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].prefix == prefix {
			return s.items[i].uri, true
		}
	}
	return "", false
}

func (s *Stack) rebound(prefix string, i int) bool {
	for j := len(s.items) - 1; j > i; j-- {
		if s.items[j].prefix == prefix {
			return true
		}
	}
	return false
}
