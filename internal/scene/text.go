package scene

import (
	"strings"

	"vidalign/internal/subtitles"
)

// AttachText joins the text of every overlapping segment into each scene,
// in segment order. Scenes without overlap get empty text.
func AttachText(scenes []Scene, segments []subtitles.Segment) {
	for i := range scenes {
		var parts []string
		for _, seg := range segments {
			if !scenes[i].Overlaps(seg.Start, seg.End) {
				continue
			}
			if text := strings.TrimSpace(seg.Text); text != "" {
				parts = append(parts, text)
			}
		}
		scenes[i].Text = strings.Join(parts, " ")
	}
}
