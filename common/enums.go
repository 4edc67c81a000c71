// Enumerations shared between the CLI and library packages live here so the
// configuration package does not have to import the packages that consume
// them.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested inspection output format.
// ENUM(text, json, css)
type OutputFmt int

// Ext returns the conventional file extension for reports in this format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtText:
		return ".txt"
	case OutputFmtJson:
		return ".json"
	case OutputFmtCss:
		return ".css"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
