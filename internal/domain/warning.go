package domain

// Warning is the advisory channel: a non-blocking message surfaced to the
// caller while the change still proceeds. It is deliberately not an error.
type Warning struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// IsZero reports whether the warning carries no content.
func (w Warning) IsZero() bool {
	return w.Title == "" && w.Message == ""
}
