package ingest

import "strings"

// notApplicable is the literal placeholder some report exports use for
// unknown geography. It is equivalent to an empty field.
const notApplicable = "Not Applicable"

// Normalize applies the domain cleanup rules to a parsed record: country
// and city are trimmed, and an empty or "Not Applicable" result becomes
// absent. The hotel identifier is left exactly as the parser computed it.
func Normalize(record Record) Record {
	record.HotelCountry = cleanLocation(record.HotelCountry)
	record.HotelCity = cleanLocation(record.HotelCity)

	return record
}

func cleanLocation(value string) string {
	value = strings.TrimSpace(value)
	if value == notApplicable {
		return ""
	}

	return value
}
