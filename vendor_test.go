package diskreport_test

import (
	"testing"

	"github.com/fwojciec/diskreport"
	"github.com/stretchr/testify/assert"
)

func TestDeriveVendor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model string
		want  diskreport.Vendor
	}{
		{"seagate", "ST4000NM0035", diskreport.VendorSeagate},
		{"western digital", "WD Blue 1TB", diskreport.VendorWesternDigital},
		{"toshiba DT", "DT01ACA300", diskreport.VendorToshiba},
		{"toshiba MG", "MG04ACA400E", diskreport.VendorToshiba},
		{"hitachi HUA", "HUA723020ALA640", diskreport.VendorHitachi},
		{"hitachi HUS", "HUS726060ALE610", diskreport.VendorHitachi},
		{"ibm", "IBM-ESXS ST300MM0006", diskreport.VendorIBM},
		{"lowercase prefix", "st1000dm003", diskreport.VendorSeagate},
		{"mixed case prefix", "Wd40EFRX", diskreport.VendorWesternDigital},
		{"leading whitespace", "  HUS724040ALE640", diskreport.VendorHitachi},
		{"unknown brand", "Samsung SSD 870", diskreport.VendorUnknown},
		{"single letter", "S", diskreport.VendorUnknown},
		{"empty", "", diskreport.VendorUnknown},
		{"whitespace only", "   ", diskreport.VendorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, diskreport.DeriveVendor(tt.model))
		})
	}
}
