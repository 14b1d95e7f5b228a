package record

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// CanonicalBytes produces the canonical serialization a record's ID and
// signature are computed over:
//
//	[0, author, created_at, kind, tags, content]
//
// as a compact JSON array. The serialization is the interop contract
// for content addressing, so it is built by hand rather than with
// encoding/json:
//   - strings are NFC normalized before escaping
//   - only quote, backslash and control characters are escaped
//     (no HTML escaping, no  /  escaping)
//   - no whitespace between elements
//
// Two records that serialize to the same bytes are the same record.
func CanonicalBytes(author string, createdAt int64, kind int, tags Tags, content string) []byte {
	var buf bytes.Buffer
	buf.WriteString("[0,")
	writeCanonicalString(&buf, author)
	fmt.Fprintf(&buf, ",%d,%d,[", createdAt, kind)
	for i, t := range tags {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		writeCanonicalString(&buf, t.Name)
		for _, v := range t.Values {
			buf.WriteByte(',')
			writeCanonicalString(&buf, v)
		}
		buf.WriteByte(']')
	}
	buf.WriteString("],")
	writeCanonicalString(&buf, content)
	buf.WriteByte(']')
	return buf.Bytes()
}

// writeCanonicalString writes an NFC-normalized, minimally escaped JSON
// string. Escapes exactly: quote, backslash, and U+0000-U+001F (using
// the short forms \n \r \t \b \f where they exist).
func writeCanonicalString(buf *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)

	buf.WriteByte('"')
	for _, b := range []byte(normalized) {
		switch b {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if b < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, b)
			} else {
				buf.WriteByte(b)
			}
		}
	}
	buf.WriteByte('"')
}
