package imagecheck

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Metadata holds the textual metadata extracted from an undecoded image file:
// EXIF tag values keyed by tag name, and PNG text-chunk values keyed by the
// chunk keyword.
type Metadata struct {
	EXIF    map[string]string
	PNGText map[string]string
}

// exifLabelTags are the EXIF fields where generators and editors leave
// provenance text.
var exifLabelTags = []string{"Software", "ImageDescription", "Artist", "Copyright", "UserComment"}

// ParseMetadata extracts EXIF tags and PNG textual chunks from raw image
// bytes. Both extractions are best effort: a missing or malformed metadata
// block yields an empty map, never an error.
func ParseMetadata(raw []byte) Metadata {
	return Metadata{
		EXIF:    parseEXIF(raw),
		PNGText: parsePNGText(raw),
	}
}

type exifCollector struct {
	fields map[string]string
}

func (c *exifCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if s, err := tag.StringVal(); err == nil {
		c.fields[string(name)] = s
	} else {
		c.fields[string(name)] = tag.String()
	}
	return nil
}

func parseEXIF(raw []byte) map[string]string {
	fields := map[string]string{}
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return fields
	}
	c := &exifCollector{fields: fields}
	_ = x.Walk(c)
	return c.fields
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// parsePNGText walks the PNG chunk stream and collects tEXt, zTXt, and
// uncompressed iTXt values.
func parsePNGText(raw []byte) map[string]string {
	out := map[string]string{}
	if !bytes.HasPrefix(raw, pngSignature) {
		return out
	}

	rest := raw[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[:4])
		chunkType := string(rest[4:8])
		if uint64(len(rest)) < 12+uint64(length) {
			break
		}
		payload := rest[8 : 8+length]

		switch chunkType {
		case "tEXt":
			if key, value, ok := splitKeyword(payload); ok {
				out[key] = string(value)
			}
		case "zTXt":
			if key, value, ok := splitKeyword(payload); ok && len(value) >= 1 {
				// First byte is the compression method; the rest is a zlib stream.
				if text, err := inflate(value[1:]); err == nil {
					out[key] = text
				}
			}
		case "iTXt":
			if key, value, ok := splitKeyword(payload); ok && len(value) >= 2 && value[0] == 0 {
				// Uncompressed only: skip flag+method, then language and
				// translated-keyword fields, both NUL-terminated.
				text := value[2:]
				for i := 0; i < 2; i++ {
					nul := bytes.IndexByte(text, 0)
					if nul < 0 {
						text = nil
						break
					}
					text = text[nul+1:]
				}
				if text != nil {
					out[key] = string(text)
				}
			}
		case "IEND":
			return out
		}

		rest = rest[12+length:]
	}
	return out
}

func splitKeyword(payload []byte) (string, []byte, bool) {
	nul := bytes.IndexByte(payload, 0)
	if nul <= 0 {
		return "", nil, false
	}
	return string(payload[:nul]), payload[nul+1:], true
}

func inflate(data []byte) (string, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// checkMetadata scans the metadata for AI provenance indicators: the known
// EXIF label tags plus every PNG text chunk, matched case-insensitively
// against the AI keyword list.
func checkMetadata(meta Metadata) MetadataCheck {
	check := MetadataCheck{
		HasEXIF:         len(meta.EXIF) > 0,
		AIRelatedFields: []TaggedField{},
	}
	check.Software = meta.EXIF["Software"]
	check.ImageDescription = meta.EXIF["ImageDescription"]

	for _, tag := range exifLabelTags {
		value, ok := meta.EXIF[tag]
		if !ok {
			continue
		}
		if containsAIKeyword(strings.ToLower(value)) {
			check.HasAIIndicator = true
			check.AIRelatedFields = append(check.AIRelatedFields, TaggedField{Field: tag, Value: value})
		}
	}

	for _, key := range sortedKeys(meta.PNGText) {
		value := meta.PNGText[key]
		if containsAIKeyword(strings.ToLower(value)) {
			check.HasAIIndicator = true
			check.AIRelatedFields = append(check.AIRelatedFields, TaggedField{Field: key, Value: value})
		}
	}
	return check
}
