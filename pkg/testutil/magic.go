package testutil

import (
	"bytes"
	"encoding/binary"
	"strconv"
)

// MagicRecord describes one binary rule for EncodeMagic. Zero WordSize and
// RangeLength are omitted from the encoding.
type MagicRecord struct {
	Nest        int
	Offset      int
	Value       []byte
	Mask        []byte
	WordSize    int
	RangeLength int
}

// MagicSection is a "[priority:type]" block and its records.
type MagicSection struct {
	Priority int
	Type     string
	Records  []MagicRecord
}

// EncodeMagic renders sections in the shared-mime-info binary magic format.
func EncodeMagic(sections ...MagicSection) []byte {
	var buf bytes.Buffer
	buf.WriteString("MIME-Magic\x00\n")
	for _, s := range sections {
		buf.WriteString("[" + strconv.Itoa(s.Priority) + ":" + s.Type + "]\n")
		for _, r := range s.Records {
			if r.Nest > 0 {
				buf.WriteString(strconv.Itoa(r.Nest))
			}
			buf.WriteString(">" + strconv.Itoa(r.Offset) + "=")
			_ = binary.Write(&buf, binary.BigEndian, uint16(len(r.Value)))
			buf.Write(r.Value)
			if r.Mask != nil {
				buf.WriteByte('&')
				buf.Write(r.Mask)
			}
			if r.WordSize > 0 {
				buf.WriteString("~" + strconv.Itoa(r.WordSize))
			}
			if r.RangeLength > 0 {
				buf.WriteString("+" + strconv.Itoa(r.RangeLength))
			}
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
