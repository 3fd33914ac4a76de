package waiver

// Config holds the pipeline policy settings.
//
// The historical tooling existed as several near-identical scripts differing
// only in these policies; they are explicit flags on one pipeline instead.
type Config struct {
	// ColumnName is the roster column holding student identifiers.
	ColumnName string `mapstructure:"column_name" default:"EYFID"`
	// HeaderFallbackRows is how many extra rows to probe for the header
	// when it is not on the first row. The roster files in circulation
	// often carry a title banner above the real header.
	HeaderFallbackRows int `mapstructure:"header_fallback_rows" default:"1"`
	// RequireFilenamePattern enforces the strict waiver filename convention
	// on every file before matching begins (batch tooling policy).
	RequireFilenamePattern bool `mapstructure:"require_filename_pattern" default:"false"`
	// OverwriteExisting allows replacing an existing output file.
	OverwriteExisting bool `mapstructure:"overwrite_existing" default:"false"`
}
