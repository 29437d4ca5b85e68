package photo

import (
	"encoding/base64"
	"log"
	"sync"
)

// rawPlaceholder is shown for RAW uploads whose pixels cannot be rendered.
const rawPlaceholder = `data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" width="300" height="200" viewBox="0 0 300 200"><rect fill="%23cccccc" width="300" height="200"/><text x="150" y="100" font-family="Arial" font-size="20" fill="%23333333" text-anchor="middle">RAW image</text></svg>`

// File is one incoming upload before any processing.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Upload is one processed file: extracted metadata plus a displayable image
// reference (a data URI).
type Upload struct {
	Metadata
	ImageURI string
}

// ProcessBatch extracts metadata and materializes a display image for every
// file, fanning out one goroutine per file and joining before returning.
// Files that cannot be converted or read are logged and skipped; a bad file
// never aborts the batch. The returned order matches the input order.
func ProcessBatch(files []File, ex Extractor, tr Transcoder) []Upload {
	results := make([]*Upload, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			u, err := processOne(f, ex, tr)
			if err != nil {
				log.Printf("photo %q skipped: %v", f.Name, err)
				return
			}
			results[i] = u
		}(i, f)
	}
	wg.Wait()

	uploads := make([]Upload, 0, len(files))
	for _, u := range results {
		if u != nil {
			uploads = append(uploads, *u)
		}
	}
	return uploads
}

func processOne(f File, ex Extractor, tr Transcoder) (*Upload, error) {
	display := f.Data
	mime := f.ContentType
	if mime == "" {
		mime = "image/jpeg"
	}

	if IsHEIC(f.Name, f.ContentType) {
		jpeg, err := tr.ToJPEG(f.Data)
		if err != nil {
			return nil, err
		}
		display = jpeg
		mime = "image/jpeg"
	}

	meta, err := ex.Extract(f.Name, f.Data)
	if err != nil {
		// No EXIF block at all. Keep the upload; the reconciler excludes
		// items without GPS and date on its own terms.
		meta = Metadata{Name: f.Name}
	}
	meta.Name = f.Name

	u := &Upload{Metadata: meta}
	if IsRaw(f.Name) {
		u.ImageURI = rawPlaceholder
	} else {
		u.ImageURI = DataURI(mime, display)
	}
	return u, nil
}

// DataURI encodes image bytes as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
