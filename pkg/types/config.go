package types

// DefaultSeparatorCode is the marker printed on separator sheets.
const DefaultSeparatorCode = "4444XUJY76TFG543ED67"

// DefaultWorkbookName is the report file written into the output directory.
const DefaultWorkbookName = "extracted_data.xlsx"

// DefaultDPI is the rasterization resolution. OCR accuracy drops below 150.
const DefaultDPI = 200

// MinRecommendedDPI is the lowest resolution that still reads reliably.
const MinRecommendedDPI = 150

// RenderConfig holds settings for page rasterization.
type RenderConfig struct {
	// DPI is the resolution pages are rendered at (default 200).
	DPI float64 `json:"dpi" yaml:"dpi" mapstructure:"dpi"`
}

// OCREngineKind identifies the OCR backend.
type OCREngineKind string

const (
	EngineGosseract OCREngineKind = "gosseract"
	EngineCLI       OCREngineKind = "cli"
)

// OCRConfig holds settings for the OCR engine. It is passed to the engine
// constructor once per run.
type OCRConfig struct {
	// Engine selects gosseract (library) or cli (tesseract binary).
	Engine OCREngineKind `json:"engine" yaml:"engine" mapstructure:"engine"`

	// Languages lists tesseract language codes (default ara, eng).
	Languages []string `json:"languages" yaml:"languages" mapstructure:"languages"`

	// TessdataPrefix points at the trained data directory. Empty uses the
	// tesseract default.
	TessdataPrefix string `json:"tessdata_prefix,omitempty" yaml:"tessdata_prefix,omitempty" mapstructure:"tessdata_prefix"`

	// Binary is the tesseract executable used by the cli engine.
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty" mapstructure:"binary"`

	// DPI is forwarded to tesseract as the image resolution hint.
	DPI int `json:"dpi,omitempty" yaml:"dpi,omitempty" mapstructure:"-"`
}

// MatchMode selects how the marker code is looked up in page text.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchFragment MatchMode = "fragment"
)

// SeparatorConfig holds the marker code and matching rule.
type SeparatorConfig struct {
	Code  string    `json:"code" yaml:"code" mapstructure:"code"`
	Match MatchMode `json:"match" yaml:"match" mapstructure:"match"`
}

// OutputConfig holds settings for files written into the output directory.
type OutputConfig struct {
	// Workbook is the report file name (default extracted_data.xlsx).
	Workbook string `json:"workbook" yaml:"workbook" mapstructure:"workbook"`

	// Overwrite allows replacing files left by an earlier run. Collisions
	// within one run always fail.
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`

	// Manifest enables manifest.yaml.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`

	// Catalog enables the catalog.db search index.
	Catalog bool `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// RunConfig groups everything one invocation needs.
type RunConfig struct {
	InputDir  string `json:"input_dir" yaml:"input_dir" mapstructure:"-"`
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"-"`

	Render    RenderConfig    `json:"render" yaml:"render" mapstructure:"render"`
	OCR       OCRConfig       `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Separator SeparatorConfig `json:"separator" yaml:"separator" mapstructure:"separator"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`

	// KeepGoing records a failing source file and moves on instead of
	// aborting the run.
	KeepGoing bool `json:"keep_going" yaml:"keep_going" mapstructure:"keep_going"`
}

// DefaultRunConfig returns the settings that reproduce the tool with only
// the two paths supplied.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Render: RenderConfig{DPI: DefaultDPI},
		OCR: OCRConfig{
			Engine:    EngineGosseract,
			Languages: []string{"ara", "eng"},
			Binary:    "tesseract",
		},
		Separator: SeparatorConfig{
			Code:  DefaultSeparatorCode,
			Match: MatchExact,
		},
		Output: OutputConfig{
			Workbook: DefaultWorkbookName,
		},
	}
}
