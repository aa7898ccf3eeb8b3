// Package geo parses and formats the positional coordinate and distance
// tokens used by the YAIXM dataset.
package geo

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// A coordinate token is "DDMMSSH DDDMMSSH", e.g. "503856N 0010403W".
const latLonLen = 16

type dms struct {
	deg, min, sec string
	hemi          byte
}

// splitLatLon checks the fixed-width layout and returns the latitude and
// longitude parts.
func splitLatLon(s string) (lat, lon dms, err error) {
	if len(s) != latLonLen || s[7] != ' ' {
		return lat, lon, eris.Errorf("geo: malformed coordinate %q", s)
	}

	lat = dms{deg: s[0:2], min: s[2:4], sec: s[4:6], hemi: s[6]}
	lon = dms{deg: s[8:11], min: s[11:13], sec: s[13:15], hemi: s[15]}

	if lat.hemi != 'N' && lat.hemi != 'S' {
		return lat, lon, eris.Errorf("geo: bad latitude hemisphere in %q", s)
	}
	if lon.hemi != 'E' && lon.hemi != 'W' {
		return lat, lon, eris.Errorf("geo: bad longitude hemisphere in %q", s)
	}
	return lat, lon, nil
}

func (d dms) decimal() (float64, error) {
	deg, err := strconv.Atoi(d.deg)
	if err != nil {
		return 0, eris.Wrapf(err, "geo: degrees %q", d.deg)
	}
	mins, err := strconv.Atoi(d.min)
	if err != nil {
		return 0, eris.Wrapf(err, "geo: minutes %q", d.min)
	}
	sec, err := strconv.Atoi(d.sec)
	if err != nil {
		return 0, eris.Wrapf(err, "geo: seconds %q", d.sec)
	}
	if mins >= 60 || sec >= 60 {
		return 0, eris.Errorf("geo: minutes/seconds out of range in %s%s%s", d.deg, d.min, d.sec)
	}

	v := float64(deg) + float64(mins)/60 + float64(sec)/3600
	if d.hemi == 'S' || d.hemi == 'W' {
		v = -v
	}
	return v, nil
}

// ParseLatLon converts a coordinate token to an XY coordinate holding
// longitude and latitude in decimal degrees.
func ParseLatLon(s string) (geom.Coord, error) {
	lat, lon, err := splitLatLon(s)
	if err != nil {
		return nil, err
	}

	y, err := lat.decimal()
	if err != nil {
		return nil, err
	}
	if y > 90 || y < -90 {
		return nil, eris.Errorf("geo: latitude out of range in %q", s)
	}

	x, err := lon.decimal()
	if err != nil {
		return nil, err
	}
	if x > 180 || x < -180 {
		return nil, eris.Errorf("geo: longitude out of range in %q", s)
	}

	return geom.Coord{x, y}, nil
}

// FormatLatLon rewrites a coordinate token in OpenAir point form,
// "DD:MM:SS H DDD:MM:SS H".
func FormatLatLon(s string) (string, error) {
	if _, err := ParseLatLon(s); err != nil {
		return "", err
	}
	lat, lon, _ := splitLatLon(s)

	return fmt.Sprintf("%s:%s:%s %c %s:%s:%s %c",
		lat.deg, lat.min, lat.sec, lat.hemi,
		lon.deg, lon.min, lon.sec, lon.hemi), nil
}
