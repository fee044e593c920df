package tabs

// Ellipsis joins the two halves of a truncated folder path.
const Ellipsis = "..."

// Settings bounds how long a folder path may be before it is shortened.
type Settings struct {
	LineLength    int // Paths longer than this are truncated
	PreviewLength int // Characters kept at each end of a truncated path
}

// DefaultSettings is used when the configuration lacks either value.
var DefaultSettings = Settings{LineLength: 30, PreviewLength: 15}

// TruncatedPath is a folder path split for display. An empty Suffix means
// Prefix is shown as is.
type TruncatedPath struct {
	Prefix string
	Suffix string
}

// Truncated reports whether the path was shortened.
func (t TruncatedPath) Truncated() bool {
	return t.Suffix != ""
}

// Head is the displayed first half, with the ellipsis when truncated.
func (t TruncatedPath) Head() string {
	if t.Truncated() {
		return t.Prefix + Ellipsis
	}
	return t.Prefix
}

// Tail is the displayed second half, or "" when not truncated.
func (t TruncatedPath) Tail() string {
	if t.Truncated() {
		return Ellipsis + t.Suffix
	}
	return ""
}

// String renders the path as prefix...suffix.
func (t TruncatedPath) String() string {
	if t.Truncated() {
		return t.Prefix + Ellipsis + t.Suffix
	}
	return t.Prefix
}

// Truncate keeps folder intact when it fits in s.LineLength, otherwise it
// keeps s.PreviewLength characters from each end. Lengths count runes. The
// halves may overlap when PreviewLength is large; that is accepted.
func Truncate(folder string, s Settings) TruncatedPath {
	if folder == ProjectFolder {
		return TruncatedPath{Prefix: folder}
	}

	runes := []rune(folder)
	if len(runes) <= s.LineLength {
		return TruncatedPath{Prefix: folder}
	}

	n := s.PreviewLength
	if n > len(runes) {
		n = len(runes)
	}
	if n <= 0 {
		return TruncatedPath{Prefix: folder}
	}
	return TruncatedPath{
		Prefix: string(runes[:n]),
		Suffix: string(runes[len(runes)-n:]),
	}
}
