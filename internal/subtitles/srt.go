package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	markupTagRe   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	assOverrideRe = regexp.MustCompile(`\{\\[^}]*\}`)
)

// ParseStats reports what ReadSRT discarded.
type ParseStats struct {
	Cues           int
	Malformed      int
	Advertisements int
}

// ParseSRT reads the SRT file at path.
func ParseSRT(path string) ([]Segment, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("open srt: %w", err)
	}
	defer f.Close()
	return ReadSRT(f)
}

// ReadSRT parses SRT cues into segments in file order. Blocks without a
// valid timing line are counted as malformed and skipped, as are cues that
// only advertise the subtitle source.
func ReadSRT(r io.Reader) ([]Segment, ParseStats, error) {
	var (
		stats    ParseStats
		segments = []Segment{}
		block    []string
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		seg, ok := parseBlock(block)
		block = block[:0]
		switch {
		case !ok:
			stats.Malformed++
		case isAdvertisement(seg.Text):
			stats.Advertisements++
		default:
			stats.Cues++
			segments = append(segments, seg)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read srt: %w", err)
	}
	flush()
	return segments, stats, nil
}

func parseBlock(lines []string) (Segment, bool) {
	start := 0
	if isNumeric(lines[0]) {
		start = 1
	}
	if start >= len(lines) || !strings.Contains(lines[start], "-->") {
		return Segment{}, false
	}
	parts := strings.SplitN(lines[start], "-->", 2)
	begin, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return Segment{}, false
	}
	// Positional hints such as "X1:100 X2:200" may trail the end timestamp.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return Segment{}, false
	}
	end, err := parseSRTTimestamp(endFields[0])
	if err != nil || end < begin {
		return Segment{}, false
	}
	return Segment{Start: begin, End: end, Text: cleanText(lines[start+1:])}, true
}

func cleanText(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = assOverrideRe.ReplaceAllString(line, "")
		line = markupTagRe.ReplaceAllString(line, "")
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return norm.NFC.String(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
