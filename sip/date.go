package sip

import "time"

// DateLayout is RFC 1123 date form required by the SIP Date header. Always GMT.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders seconds since epoch as SIP-date.
func FormatDate(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(DateLayout)
}

// ParseDate parses SIP-date into time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
