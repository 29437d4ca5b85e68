package photo

import (
	"bytes"
	"errors"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Metadata is the flat tag projection the trail reconciler needs from one
// photo: the raw EXIF datetime string and the GPS position in DMS components.
type Metadata struct {
	Name       string
	DateString string // EXIF form, "2006:01:02 15:04:05"
	LatDMS     []float64
	LatRef     string
	LonDMS     []float64
	LonRef     string
}

// Extractor reads metadata from image bytes.
type Extractor interface {
	Extract(name string, data []byte) (Metadata, error)
}

// ExifExtractor is the production Extractor, backed by goexif.
type ExifExtractor struct{}

func (ExifExtractor) Extract(name string, data []byte) (Metadata, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{Name: name}
	meta.DateString = tagString(x, exif.DateTimeOriginal)
	if meta.DateString == "" {
		meta.DateString = tagString(x, exif.DateTime)
	}

	meta.LatDMS = tagRationals(x, exif.GPSLatitude)
	meta.LatRef = tagString(x, exif.GPSLatitudeRef)
	meta.LonDMS = tagRationals(x, exif.GPSLongitude)
	meta.LonRef = tagString(x, exif.GPSLongitudeRef)
	return meta, nil
}

func tagString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}

func tagRationals(x *exif.Exif, field exif.FieldName) []float64 {
	tag, err := x.Get(field)
	if err != nil {
		return nil
	}
	vals, err := rationals(tag)
	if err != nil {
		return nil
	}
	return vals
}

func rationals(tag *tiff.Tag) ([]float64, error) {
	out := make([]float64, 0, int(tag.Count))
	for i := 0; i < int(tag.Count); i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return nil, err
		}
		if den == 0 {
			return nil, errors.New("zero denominator")
		}
		out = append(out, float64(num)/float64(den))
	}
	return out, nil
}
