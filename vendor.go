package diskreport

import "strings"

// Vendor is a drive brand derived from the model number.
type Vendor string

const (
	VendorSeagate        Vendor = "Seagate"
	VendorWesternDigital Vendor = "Western Digital"
	VendorToshiba        Vendor = "Toshiba"
	VendorHitachi        Vendor = "Hitachi"
	VendorIBM            Vendor = "IBM"
	VendorUnknown        Vendor = "Unknown"
)

// vendorPrefixes is checked in order; the first matching prefix wins.
var vendorPrefixes = []struct {
	prefix string
	vendor Vendor
}{
	{"ST", VendorSeagate},
	{"WD", VendorWesternDigital},
	{"DT", VendorToshiba},
	{"MG", VendorToshiba},
	{"HUA", VendorHitachi},
	{"HUS", VendorHitachi},
	{"IBM", VendorIBM},
}

// DeriveVendor maps a model number to its vendor using case-insensitive
// prefix rules. Unrecognized and empty models map to VendorUnknown.
func DeriveVendor(model string) Vendor {
	m := strings.ToUpper(strings.TrimSpace(model))
	if m == "" {
		return VendorUnknown
	}
	for _, p := range vendorPrefixes {
		if strings.HasPrefix(m, p.prefix) {
			return p.vendor
		}
	}
	return VendorUnknown
}
