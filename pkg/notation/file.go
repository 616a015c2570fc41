package notation

import "strings"

// File is the root of a rendered document: a LilyPond version header
// followed by its top-level Nodes (each a Staff or a StaffGroup). When
// there is more than one, they are wrapped in a single "<< ... >>" score
// body; a lone node is emitted unwrapped.
type File struct {
	Version string
	Tracks  []Node
}

// NewFile builds an empty File pinned to a LilyPond version string.
func NewFile(version string) *File {
	return &File{Version: version}
}

// Add appends a top-level track node (a *Staff or *StaffGroup).
func (f *File) Add(track Node) {
	f.Tracks = append(f.Tracks, track)
}

// Render emits the version header followed by the score body. Each track
// renders against its own fresh Context sharing the file's time signature,
// since staves advance position independently.
func (f *File) Render(ts TimeSignature, relative bool) string {
	var sb strings.Builder
	sb.WriteString("\\version \"" + f.Version + "\"\n\n")

	if len(f.Tracks) == 1 {
		ctx := NewContext(ts, relative)
		sb.WriteString(f.Tracks[0].Render(ctx))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("<<\n")
	for _, track := range f.Tracks {
		ctx := NewContext(ts, relative)
		sb.WriteString(track.Render(ctx))
		sb.WriteString("\n")
	}
	sb.WriteString(">>\n")
	return sb.String()
}
