package diskreport

import "strconv"

// Columns is the fixed column order of the drive summary.
var Columns = []string{
	"Label Serial",
	"VPD Serial",
	"Model Number",
	"Vendor Information",
	"Vendor",
	"File Name",
	"Health Score",
	"Allocated Sections",
	"Grown Defects",
}

// labelSerialLen is the length of the display-friendly serial prefix.
const labelSerialLen = 8

// DriveRecord is one row of the drive summary.
type DriveRecord struct {
	LabelSerial       string
	VpdSerial         string
	ModelNumber       string
	VendorInformation string
	Vendor            Vendor
	FileName          string
	HealthScore       *int // nil when unrecoverable
	AllocatedSections int
	GrownDefects      int

	// ParsingError is set only on placeholder records standing in for a
	// failed extraction.
	ParsingError string

	// Encoding and EncodingsTried describe how the source was decoded.
	// They feed the error log and are never written to the summary table.
	Encoding       string
	EncodingsTried []string
}

// NewDriveRecord builds a record from extracted fields. The serial must
// already be normalized.
func NewDriveRecord(fileName string, f Fields) *DriveRecord {
	return &DriveRecord{
		LabelSerial:       LabelSerial(f.Serial),
		VpdSerial:         f.Serial,
		ModelNumber:       f.Model,
		VendorInformation: f.VendorInfo,
		Vendor:            DeriveVendor(f.Model),
		FileName:          fileName,
		HealthScore:       f.Health,
		AllocatedSections: f.Reallocated,
		GrownDefects:      f.GrownDefects,
	}
}

// NewPlaceholder returns a record standing in for a file that yielded no
// drive data.
func NewPlaceholder(fileName, msg string) *DriveRecord {
	return &DriveRecord{
		Vendor:       VendorUnknown,
		FileName:     fileName,
		ParsingError: msg,
	}
}

// IsPlaceholder reports whether the record carries a parsing error instead
// of drive data.
func (r *DriveRecord) IsPlaceholder() bool {
	return r.ParsingError != ""
}

// HasDriveData reports whether at least one of serial, model or health was
// recovered. Records failing this check are not kept by the parsers.
func (r *DriveRecord) HasDriveData() bool {
	return r.VpdSerial != "" || r.ModelNumber != "" || r.HealthScore != nil
}

// Strings projects the record onto Columns. A nil health score becomes an
// empty string.
func (r *DriveRecord) Strings() []string {
	health := ""
	if r.HealthScore != nil {
		health = strconv.Itoa(*r.HealthScore)
	}
	return []string{
		r.LabelSerial,
		r.VpdSerial,
		r.ModelNumber,
		r.VendorInformation,
		string(r.Vendor),
		r.FileName,
		health,
		strconv.Itoa(r.AllocatedSections),
		strconv.Itoa(r.GrownDefects),
	}
}

// LabelSerial returns the first eight characters of a serial.
func LabelSerial(serial string) string {
	if len(serial) <= labelSerialLen {
		return serial
	}
	return serial[:labelSerialLen]
}

// ParseErrorEntry is one line of the error log.
type ParseErrorEntry struct {
	FileName       string
	ErrorMessage   string
	EncodingsTried []string
}

// ErrorColumns is the column order of the error sheet.
var ErrorColumns = []string{"File Name", "Error Details", "Encodings Attempted"}

// NewParseErrorEntry builds an error log entry from a placeholder record.
func NewParseErrorEntry(r *DriveRecord) ParseErrorEntry {
	return ParseErrorEntry{
		FileName:       r.FileName,
		ErrorMessage:   r.ParsingError,
		EncodingsTried: r.EncodingsTried,
	}
}

// Parser converts one report file into drive records.
//
// Parse never returns an empty slice: a file with no recognizable drive
// data yields a single placeholder record whose ParsingError explains why.
// Implementations must not panic and must release every resource they
// open before returning.
type Parser interface {
	Parse(path, fileName string) []*DriveRecord
}

// HealthBand classifies a health score for display.
type HealthBand int

const (
	HealthUnknown HealthBand = iota
	HealthGood               // > 95
	HealthFair               // 90..95
	HealthPoor               // < 90
)

// BandFor returns the display band for a health score. Exactly 95 is fair,
// not good.
func BandFor(health *int) HealthBand {
	switch {
	case health == nil:
		return HealthUnknown
	case *health > 95:
		return HealthGood
	case *health >= 90:
		return HealthFair
	default:
		return HealthPoor
	}
}
