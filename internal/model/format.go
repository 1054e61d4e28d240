package model

// Format is the output format of a report.
//
// Values outside the set can still be constructed with a conversion such as
// Format("XML"). The report package renders those as an empty document unless
// it runs in strict mode; ParseFormat never produces them.
type Format string

const (
	// FormatCSV renders a comma separated document.
	FormatCSV Format = "CSV"

	// FormatHTML renders an HTML page containing a table.
	FormatHTML Format = "HTML"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatHTML}
}

// ParseFormat converts s to a Format. The comparison is exact and case-sensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.Supported() {
		return "", &UnsupportedFormatError{Value: s}
	}
	return f, nil
}

// Supported reports whether f is one of the supported formats.
func (f Format) Supported() bool {
	switch f {
	case FormatCSV, FormatHTML:
		return true
	default:
		return false
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the conventional file extension for f, without a dot.
// Unsupported formats return "txt".
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	default:
		return "txt"
	}
}
