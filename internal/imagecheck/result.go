package imagecheck

// Analysis is the full result of a label analysis for a single image. Field
// names are part of the wire format and must not change.
type Analysis struct {
	Success               bool           `json:"success"`
	Error                 string         `json:"error,omitempty"`
	HasLabel              bool           `json:"has_label"`
	LabelCoverage         float64        `json:"label_coverage"`
	CompliesWith10Percent bool           `json:"complies_with_10_percent"`
	MetadataCheck         MetadataCheck  `json:"metadata_check"`
	VisualAnalysis        VisualAnalysis `json:"visual_analysis"`
	OCRResults            []string       `json:"ocr_results"`
	ImageDimensions       Dimensions     `json:"image_dimensions"`
}

// MetadataCheck reports AI indicators found in image metadata.
type MetadataCheck struct {
	HasEXIF          bool          `json:"has_exif"`
	HasAIIndicator   bool          `json:"has_ai_indicator"`
	Software         string        `json:"software,omitempty"`
	ImageDescription string        `json:"image_description,omitempty"`
	AIRelatedFields  []TaggedField `json:"ai_related_fields"`
}

// TaggedField is a metadata field whose value matched an AI keyword.
type TaggedField struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// VisualAnalysis reports watermark-like structure found in the pixels.
type VisualAnalysis struct {
	HasWatermark        bool                    `json:"has_watermark"`
	WatermarkRegions    []WatermarkRegion       `json:"watermark_regions"`
	CornerAnalysis      map[string]CornerResult `json:"corner_analysis"`
	BrightnessAnomalies bool                    `json:"brightness_anomalies"`
}

// WatermarkRegion is the bounding box of a candidate watermark.
type WatermarkRegion struct {
	X               int     `json:"x"`
	Y               int     `json:"y"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// CornerResult records a brightness anomaly in one image corner.
type CornerResult struct {
	HasAnomaly     bool    `json:"has_anomaly"`
	BrightnessDiff float64 `json:"brightness_diff"`
}

// Dimensions is the pixel size of the analyzed image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
