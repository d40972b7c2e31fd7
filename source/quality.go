package source

import (
	"regexp"
	"strconv"
	"strings"
)

// Quality is the vertical resolution of a stream, or Unknown.
type Quality int

const (
	Unknown Quality = 0
	P144    Quality = 144
	P240    Quality = 240
	P360    Quality = 360
	P480    Quality = 480
	P720    Quality = 720
	P1080   Quality = 1080
	P1440   Quality = 1440
	P2160   Quality = 2160
)

func (q Quality) String() string {
	if q == Unknown {
		return "Unknown"
	}
	return strconv.Itoa(int(q)) + "p"
}

var qualityNumber = regexp.MustCompile(`(\d{3,4})[pP]?`)

var qualityKeywords = []struct {
	keyword string
	quality Quality
}{
	{"4k", P2160},
	{"uhd", P2160},
	{"2k", P1440},
	{"fullhd", P1080},
	{"fhd", P1080},
	{"hd", P720},
	{"sd", P480},
	{"cam", P240},
}

// QualityFromName parses labels such as "720p", "1080", "4K" or "HD".
func QualityFromName(name string) Quality {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return Unknown
	}

	if m := qualityNumber.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return Quality(n)
		}
	}

	compact := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(lowered)
	for _, k := range qualityKeywords {
		if strings.Contains(compact, k.keyword) {
			return k.quality
		}
	}

	return Unknown
}
