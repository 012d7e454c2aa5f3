package config

const (
	// MaxNameLength is the maximum length for project names and entity
	// titles. Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxNameLength = 255

	// MaxTypeTagLength is the maximum length for free-form type tags
	// (source_type, summary_type, link_type).
	MaxTypeTagLength = 50

	// MaxLanguageCodeLength is the maximum length for translation
	// language codes (BCP 47 tags fit comfortably).
	MaxLanguageCodeLength = 10

	// MaxURLLength is the maximum length for URLs and file paths.
	MaxURLLength = 500

	// MaxDescriptionLength is the maximum length for link descriptions.
	MaxDescriptionLength = 1000

	// MaxVideoFormatLength is the maximum length for video format tags.
	MaxVideoFormatLength = 20

	// DefaultPageSize is the page size applied when a list call passes a
	// non-positive limit.
	DefaultPageSize = 100
)
