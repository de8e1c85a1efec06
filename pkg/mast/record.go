package mast

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	cosmic "github.com/OfriRose/cosmic-canvas"
	"github.com/OfriRose/cosmic-canvas/pkg/consts"
)

// MJD 40587 = 1970-01-01
const mjdUnixEpoch = 40587

func toRecord(r row, telescope cosmic.Telescope) cosmic.ObservationRecord {

	if t, ok := cosmic.ParseTelescope(r.str("obs_collection")); ok {
		telescope = t
	}

	return cosmic.ObservationRecord{
		ObsID:      r.str("obs_id"),
		TargetName: r.str("target_name"),
		Telescope:  telescope,
		Instrument: r.str("instrument_name"),
		Metadata:   formatMetadata(r),
	}
}

// подписи те же, что показывает галерея
func formatMetadata(r row) map[string]string {
	md := map[string]string{}

	add := func(label, value string) {
		if value != "" {
			md[label] = value
		}
	}

	add("Target", r.str("target_name"))
	add("Instrument", r.str("instrument_name"))
	add("Filters", r.str("filters"))
	add("Released", mjdToDate(r["t_obs_release"]))
	add("Proposal ID", r.str("proposal_id"))
	add("Observation ID", r.str("obs_id"))

	return md
}

func (r row) str(name string) string {
	switch v := r[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func mjdToDate(v any) string {
	var mjd float64

	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return ""
		}
		mjd = f
	case float64:
		mjd = n
	default:
		return ""
	}

	if mjd <= 0 {
		return ""
	}

	secs := (mjd - mjdUnixEpoch) * 86400
	return time.Unix(int64(secs), 0).UTC().Format(consts.TimeFormat)
}
