package diskreport

// Label separators. Diagnostic tools pad labels with dot leaders before the
// colon ("Health . . . . : 100 %"), so both accept dots and dashes.
const (
	colon   = `\s*(?:[.\-]\s*)*:\s*`
	equalOr = `\s*(?:[.\-]\s*)*[:=]\s*`
	optSep  = `(?:\s*[.:\-])*\s*`
)

// textSerial captures a serial that some tools print in space-separated
// groups. NormalizeSerial strips the spaces.
const textSerial = `([A-Z0-9](?:[ \t]?[A-Z0-9\-]){5,63})`

// TextPatterns are the cascades for plain-text reports.
var TextPatterns = PatternSet{
	FieldSerial: {
		NewPattern("Hard Disk Serial Number", `(?i)Hard\s*Disk\s*Serial\s*Number`+colon+textSerial),
		NewPattern("VPD Serial", `(?i)\bVPD\s*Serial`+colon+textSerial),
		NewPattern("Serial Number", `(?i)\bSerial\s*Number`+colon+textSerial),
	},
	FieldModel: {
		NewPattern("Hard Disk Model ID", `(?i)Hard\s*Disk\s*Model\s*ID`+colon+`([^\r\n]+)`),
		NewPattern("Model ID", `(?i)\bModel\s*ID`+colon+`([^\r\n]+)`),
		NewPattern("Model", `(?i)\bModel`+colon+`([^\r\n]+)`),
	},
	FieldVendorInfo: {
		NewPattern("Vendor Information", `(?i)Vendor\s*Information`+colon+`([^\r\n]+)`),
		NewPattern("Vendor", `(?i)\bVendor`+colon+`([^\r\n]+)`),
		NewPattern("Manufacturer", `(?i)\bManufacturer`+colon+`([^\r\n]+)`),
	},
	FieldHealth: {
		NewPattern("Health", `(?i)\bHealth`+colon+`[#\s\-\x{2588}\x{2591}]*(\d{1,3})\s*%?`),
		NewPattern("Health Score", `(?i)Health\s*Score`+colon+`(\d{1,3})\s*%?`),
		NewPattern("Overall Health", `(?i)Overall\s*Health`+colon+`(\d{1,3})\s*%?`),
	},
	FieldReallocated: {
		NewPattern("Reallocated Sectors Count", `(?i)Reallocated\s*Sectors?\s*(?:Count|Co\.\.)`+colon+`(\d+)`),
		NewPattern("Reallocated Sectors", `(?i)\bReallocated\s*Sectors?`+colon+`(\d+)`),
		NewPattern("Reallocated", `(?i)\bReallocated`+colon+`(\d+)`),
	},
	FieldGrownDefects: {
		NewPattern("Grown Defect List Count", `(?i)Grown\s*Defects?(?:\s*List)?(?:\s*Count)?`+colon+`(\d+)`),
		NewPattern("Grown Defects", `(?i)\bGrown\s*Defects?`+colon+`(\d+)`),
		NewPattern("Defect Count", `(?i)\bDefect\s*Count`+colon+`(\d+)`),
	},
}

// HTMLPatterns are the cascades for flattened HTML reports. Table cells
// often put the label and value on separate lines, so separators may span
// line breaks. Bare "Health" needs the percent sign since its separator is
// optional.
var HTMLPatterns = PatternSet{
	FieldSerial: {
		NewPattern("Hard Disk Serial Number", `(?i)Hard\s*Disk\s*Serial\s*Number`+colon+`([A-Z0-9][A-Z0-9\-]{7,63})`),
		NewPattern("VPD Serial", `(?i)\bVPD\s*Serial`+colon+`([A-Z0-9][A-Z0-9\-]{7,63})`),
		NewPattern("Serial Number", `(?i)\bSerial\s*Number`+colon+`([A-Z0-9][A-Z0-9\-]{7,63})`),
		NewPattern("Serial", `(?i)\bSerial`+colon+`([A-Z0-9][A-Z0-9\-]{7,63})`),
	},
	FieldModel: {
		NewPattern("Hard Disk Model ID", `(?i)Hard\s*Disk\s*Model\s*ID`+colon+`([^\r\n]+)`),
		NewPattern("Model ID", `(?i)\bModel\s*ID`+colon+`([^\r\n]+)`),
		NewPattern("Model", `(?i)\bModel`+colon+`([^\r\n]+)`),
		NewPattern("Hard Disk Model", `(?i)Hard\s*Disk\s*Model`+colon+`([^\r\n]+)`),
	},
	FieldVendorInfo: {
		NewPattern("Vendor Information", `(?i)Vendor\s*Information`+colon+`([^\r\n]+)`),
		NewPattern("Vendor", `(?i)\bVendor`+colon+`([^\r\n]+)`),
		NewPattern("Manufacturer", `(?i)\bManufacturer`+colon+`([^\r\n]+)`),
	},
	FieldHealth: {
		NewPattern("Health", `(?i)\bHealth`+optSep+`[#\s\-\x{2588}\x{2591}]*(\d{1,3})\s*%`),
		NewPattern("Health Score", `(?i)Health\s*Score`+colon+`(\d{1,3})\s*%?`),
		NewPattern("Overall Health", `(?i)Overall\s*Health`+colon+`(\d{1,3})\s*%?`),
	},
	FieldReallocated: {
		NewPattern("Reallocated Sector Count", `(?i)Reallocated\s*Sector\s*Count`+optSep+`(\d+)`),
		NewPattern("Reallocated Sectors", `(?i)Reallocated\s*Sectors?`+optSep+`(\d+)`),
		NewPattern("Allocated Sections", `(?i)Allocated\s*Sections`+optSep+`(\d+)`),
		NewPattern("Reallocated", `(?i)\bReallocated`+optSep+`(\d+)`),
	},
	FieldGrownDefects: {
		NewPattern("Grown Defect Count", `(?i)Grown\s*Defect(?:\s*Count)?`+optSep+`(\d+)`),
		NewPattern("Grown Defects", `(?i)Grown\s*Defects`+optSep+`(\d+)`),
		NewPattern("Defect Count", `(?i)\bDefect\s*Count`+optSep+`(\d+)`),
	},
}

// PDFPatterns are the cascades for single-drive PDF logs. Vendor
// information only accepts its exact label and is left blank otherwise.
var PDFPatterns = PatternSet{
	FieldSerial: {
		NewPattern("Serial Number =", `(?i)Serial\s*Number\s*=\s*([A-Z0-9][A-Z0-9\-]{7,63})`),
		NewPattern("Serial:", `(?i)\bSerial\s*:\s*([A-Z0-9][A-Z0-9\-]{7,63})`),
	},
	FieldModel: {
		NewPattern("Product =", `(?i)\bProduct\s*=\s*([^\r\n]+)`),
		NewPattern("Product:", `(?i)\bProduct\s*:\s*([^\r\n]+)`),
		NewPattern("Hard Disk Model ID", `(?i)Hard\s*Disk\s*Model\s*ID\s*[:=]\s*([^\r\n]+)`),
	},
	FieldVendorInfo: {
		NewPattern("Vendor Information", `(?i)Vendor\s*Information\s*[:=]\s*([^\r\n]+)`),
	},
	FieldHealth: {
		NewPattern("Health", `(?i)Health`+equalOr+`(\d{1,3})\s*%?`),
	},
	FieldGrownDefects: {
		NewPattern("Number of Grown Defects", `(?i)Number\s+of\s+Grown\s+Defects\s*=\s*(\d+)`),
		NewPattern("Grown Defect List Count", `(?i)Grown\s*Defects?(?:\s*List)?(?:\s*Count)?\s*[:=]\s*(\d+)`),
	},
	FieldReallocated: {
		NewPattern("Reallocated Sector Count", `(?i)Reallocated\s*Sectors?(?:\s*Count)?\s*[:=]\s*(\d+)`),
	},
}
