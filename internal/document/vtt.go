package document

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	vttTimestamp = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}`)
	vttVoiceTag  = regexp.MustCompile(`<v ([^>]+)>(.+?)</v>`)
	vttCueID     = regexp.MustCompile(`^\d+$`)
)

// readVTT parses a WebVTT meeting transcript. Voice-tagged cues become
// "Speaker: text" lines; untagged cue text is kept as-is. Headers,
// timestamps, cue numbers, and NOTE blocks are dropped.
func readVTT(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	speakers := map[string]bool{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", line == "WEBVTT",
			strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"),
			vttTimestamp.MatchString(line),
			vttCueID.MatchString(line):
			continue
		}

		if m := vttVoiceTag.FindStringSubmatch(line); m != nil {
			speaker := strings.TrimSpace(m[1])
			speakers[speaker] = true
			lines = append(lines, fmt.Sprintf("%s: %s", speaker, strings.TrimSpace(m[2])))
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	content := strings.Join(lines, "\n")
	return &Document{
		Content:   content,
		FileName:  filepath.Base(path),
		Format:    "vtt",
		Type:      TypeTranscript,
		Title:     titleFromFilename(path),
		Speakers:  sortedKeys(speakers),
		WordCount: len(strings.Fields(content)),
	}, nil
}
