package imagecheck

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestCheckMetadataEXIFIndicator(t *testing.T) {
	meta := Metadata{
		EXIF: map[string]string{
			"Software": "Stable Diffusion v2.1",
			"Make":     "ACME",
		},
	}

	check := checkMetadata(meta)

	if !check.HasEXIF {
		t.Fatal("has_exif must be set")
	}
	if !check.HasAIIndicator {
		t.Fatal("expected AI indicator from Software tag")
	}
	if check.Software != "Stable Diffusion v2.1" {
		t.Fatalf("software = %q", check.Software)
	}
	if len(check.AIRelatedFields) != 1 {
		t.Fatalf("ai_related_fields = %+v, want one entry", check.AIRelatedFields)
	}
	if check.AIRelatedFields[0].Field != "Software" {
		t.Fatalf("field = %q, want Software", check.AIRelatedFields[0].Field)
	}
}

func TestCheckMetadataIgnoresUnrelatedTags(t *testing.T) {
	// An AI keyword outside the provenance tags does not count.
	meta := Metadata{
		EXIF: map[string]string{
			"Make":  "midjourney camera co",
			"Model": "X100",
		},
	}

	check := checkMetadata(meta)

	if check.HasAIIndicator {
		t.Fatalf("unexpected AI indicator: %+v", check.AIRelatedFields)
	}
	if !check.HasEXIF {
		t.Fatal("has_exif must still be set")
	}
}

func TestCheckMetadataPNGText(t *testing.T) {
	meta := Metadata{
		PNGText: map[string]string{
			"parameters": "a cat, DALL-E render",
			"gamma":      "0.45455",
		},
	}

	check := checkMetadata(meta)

	if check.HasEXIF {
		t.Fatal("has_exif must not be set without EXIF tags")
	}
	if !check.HasAIIndicator {
		t.Fatal("expected AI indicator from PNG text chunk")
	}
	if len(check.AIRelatedFields) != 1 || check.AIRelatedFields[0].Field != "parameters" {
		t.Fatalf("ai_related_fields = %+v", check.AIRelatedFields)
	}
}

func TestCheckMetadataEmpty(t *testing.T) {
	check := checkMetadata(Metadata{})
	if check.HasEXIF || check.HasAIIndicator {
		t.Fatalf("empty metadata produced findings: %+v", check)
	}
	if check.AIRelatedFields == nil {
		t.Fatal("ai_related_fields must marshal as [], not null")
	}
}

func pngChunk(chunkType string, payload []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
	buf.WriteString(chunkType)
	buf.Write(payload)
	buf.Write([]byte{0, 0, 0, 0}) // CRC not verified
	return buf.Bytes()
}

func TestParsePNGTextChunks(t *testing.T) {
	var raw bytes.Buffer
	raw.Write(pngSignature)
	raw.Write(pngChunk("IHDR", make([]byte, 13)))
	raw.Write(pngChunk("tEXt", []byte("Comment\x00made with ai")))
	raw.Write(pngChunk("iTXt", []byte("Description\x00\x00\x00\x00\x00an ai-generated scene")))
	raw.Write(pngChunk("IEND", nil))

	meta := ParseMetadata(raw.Bytes())

	if got := meta.PNGText["Comment"]; got != "made with ai" {
		t.Fatalf("Comment = %q", got)
	}
	if got := meta.PNGText["Description"]; got != "an ai-generated scene" {
		t.Fatalf("Description = %q", got)
	}
	if len(meta.EXIF) != 0 {
		t.Fatalf("unexpected EXIF fields: %v", meta.EXIF)
	}
}

func TestParseMetadataNotPNG(t *testing.T) {
	meta := ParseMetadata([]byte("\xff\xd8\xff\xe0 not a png"))
	if len(meta.PNGText) != 0 {
		t.Fatalf("unexpected PNG text: %v", meta.PNGText)
	}
}

func TestParseMetadataTruncatedChunk(t *testing.T) {
	var raw bytes.Buffer
	raw.Write(pngSignature)
	// Declared length exceeds available bytes.
	raw.Write([]byte{0, 0, 0, 99, 't', 'E', 'X', 't', 'a', 'b'})

	meta := ParseMetadata(raw.Bytes())
	if len(meta.PNGText) != 0 {
		t.Fatalf("truncated chunk produced text: %v", meta.PNGText)
	}
}
