package source

// Unit represents one source compilation unit
type Unit struct {
	ID      string // unit identifier, usually the file path
	Crate   string // owning crate name if detected
	Content []byte
	Err     error // set when the content could not be read
}

// NewUnit creates a unit from in-memory source text
func NewUnit(id string, content []byte) *Unit {
	return &Unit{ID: id, Content: content}
}
