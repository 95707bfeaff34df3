package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"givio/internal/giv"
)

// LoadCSV reads a CSV with latitude/longitude columns into a Giv.
func LoadCSV(path string) (*giv.Giv, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// csvColumns finds the coordinate columns of a header row.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func csvColumns(header []string) (lat, lon int, ok bool) {
	lat, lon = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if lat == -1 {
				lat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if lon == -1 {
				lon = i
			}
		}
	}
	return lat, lon, lat != -1 && lon != -1
}

// DecodeCSV returns one marks-only dataset with a point per valid row, x
// being the longitude. Rows without two numeric coordinates are skipped.
func DecodeCSV(r io.Reader) (*giv.Giv, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, err
	}
	idxLat, idxLon, ok := csvColumns(header)
	if !ok {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var pts giv.Contour
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, giv.Point{X: lon, Y: lat})
	}
	if len(pts) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	g := giv.New()
	g.Append(pointsDataSet(pts))
	return g, nil
}
