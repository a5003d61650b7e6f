package domain

// Metadata is the resolvable identity of an item: title, author (or
// channel) and an optional format-specific identifier such as an ISBN.
// Each resolver stage produces one of these; merging is explicit so
// the stages stay independently testable.
type Metadata struct {
	Title  string
	Author string
	ISBN   string
}

// Merge fills fields of m that are still unset from other and returns
// the result. Fields already set on m always win, which gives the
// caller-override stage its "always wins" semantics when applied last
// in reverse priority order.
func (m Metadata) Merge(other Metadata) Metadata {
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.Author == "" {
		m.Author = other.Author
	}
	if m.ISBN == "" {
		m.ISBN = other.ISBN
	}
	return m
}

// Complete reports whether both required fields are resolved.
func (m Metadata) Complete() bool {
	return m.Title != "" && m.Author != ""
}
