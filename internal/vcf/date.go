package vcf

import "strings"

// DateFromVCF turns a compact vCard date (YYYYMMDD) into YYYY-MM-DD.
// Anything that is not eight characters once hyphens are removed, such as the
// truncated --MMDD form, is returned unchanged.
func DateFromVCF(value string) string {
	clean := strings.ReplaceAll(value, "-", "")
	if len(clean) != 8 {
		return value
	}
	return clean[:4] + "-" + clean[4:6] + "-" + clean[6:]
}

// DateToVCF strips the hyphens of an ISO date. The result is not validated.
func DateToVCF(value string) string {
	return strings.ReplaceAll(value, "-", "")
}
