package cosmic

import "strings"

type APODEntry struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	HDURL       string `json:"hd_url,omitempty"`
	ThumbURL    string `json:"thumbnail_url,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
}

const (
	MediaImage = "image"
	MediaVideo = "video"
)

type Telescope string

const (
	JWST Telescope = "JWST"
	HST  Telescope = "HST"
)

// ParseTelescope понимает и сокращения, и "человеческие" названия
func ParseTelescope(s string) (Telescope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jwst", "webb", "james webb":
		return JWST, true
	case "hst", "hubble":
		return HST, true
	}

	return "", false
}

// идентификатор obs_collection в архиве
func (t Telescope) Mission() string {
	return string(t)
}

type ObservationRecord struct {
	ObsID      string            `json:"obs_id"`
	TargetName string            `json:"target_name"`
	Telescope  Telescope         `json:"telescope"`
	Instrument string            `json:"instrument"`
	PreviewURL string            `json:"preview_image_url,omitempty"`
	Metadata   map[string]string `json:"observation_metadata,omitempty"`
}

func (o ObservationRecord) HasPreview() bool {
	return o.PreviewURL != ""
}

type ComparisonPair struct {
	Name    string `json:"name"`
	JWSTURL string `json:"jwst_url"`
	HSTURL  string `json:"hst_url"`
}
