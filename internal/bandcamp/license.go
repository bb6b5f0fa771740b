package bandcamp

import "github.com/handiism/bandcamp-track-extractor/internal/bandcamp/dto"

// LicenseUnknown is reported for license codes outside the known table.
const LicenseUnknown = "Unknown"

// licenses maps Bandcamp's license_type codes to license names. Code 7 is
// not used by Bandcamp.
var licenses = map[int64]string{
	1: "All rights reserved ©",
	2: "CC BY-NC-ND 3.0",
	3: "CC BY-NC-SA 3.0",
	4: "CC BY-NC 3.0",
	5: "CC BY-ND 3.0",
	6: "CC BY 3.0",
	8: "CC BY-SA 3.0",
}

// LicenseLabel returns the license name for a license_type code.
// An absent code, like any code outside the table, yields LicenseUnknown.
func LicenseLabel(code dto.OptionalInt) string {
	if !code.Valid {
		return LicenseUnknown
	}
	if label, ok := licenses[code.Value]; ok {
		return label
	}
	return LicenseUnknown
}
