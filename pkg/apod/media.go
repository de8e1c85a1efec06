package apod

import (
	"fmt"

	cosmic "github.com/OfriRose/cosmic-canvas"

	"github.com/sirupsen/logrus"
)

// у старых записей нет HD качества, а у видео есть только превью, если его запросили
func BestImageURL(m cosmic.APODEntry) (string, error) {

	switch {
	case m.MediaType == cosmic.MediaImage && m.HDURL != "":
		return m.HDURL, nil
	case m.MediaType == cosmic.MediaImage && m.URL != "":
		return m.URL, nil
	case m.MediaType == cosmic.MediaVideo && m.ThumbURL != "":
		return m.ThumbURL, nil
	}

	logrus.Warnf("no image url for apod entry %s (media_type %q)", m.Date, m.MediaType)
	return "", fmt.Errorf("%w: entry %s has no image url", cosmic.ErrData, m.Date)
}
