package magic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
)

// Header is the fixed preamble of every magic file.
const Header = "MIME-Magic\x00\n"

// cursor walks a magic file byte by byte.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) eof() bool { return c.pos >= len(c.data) }

func (c *cursor) peek() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.data[c.pos], true
}

func (c *cursor) next() (byte, bool) {
	b, ok := c.peek()
	if ok {
		c.pos++
	}
	return b, ok
}

func (c *cursor) take(n int) ([]byte, bool) {
	if c.pos+n > len(c.data) {
		return nil, false
	}
	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, true
}

// number reads a run of ASCII digits. An empty run reads as zero.
func (c *cursor) number() (int, error) {
	start := c.pos
	for !c.eof() && c.data[c.pos] >= '0' && c.data[c.pos] <= '9' {
		c.pos++
	}
	if start == c.pos {
		return 0, nil
	}
	return strconv.Atoi(string(c.data[start:c.pos]))
}

func (c *cursor) line() []byte {
	end := bytes.IndexByte(c.data[c.pos:], '\n')
	if end < 0 {
		out := c.data[c.pos:]
		c.pos = len(c.data)
		return out
	}
	out := c.data[c.pos : c.pos+end+1]
	c.pos += end + 1
	return out
}

// Parse reads one magic file and appends its sections to the builder. Any
// format error rejects the whole file; sections parsed before the error are
// discarded.
func (b *Builder) Parse(r io.Reader, source string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read magic file %s", source)
	}

	staged := b.clone()
	if err := staged.parse(data); err != nil {
		return errors.Wrapf(err, errors.ErrMagicFormat, "invalid magic file %s", source).
			WithDetail("source", source)
	}
	*b = *staged

	b.logger.Debug().
		Str("source", source).
		Int("types", len(b.table.types)).
		Int("rules", len(b.table.rules)).
		Msg("Parsed magic file")
	return nil
}

func (b *Builder) parse(data []byte) error {
	if !bytes.HasPrefix(data, []byte(Header)) {
		return fmt.Errorf("bad header")
	}
	c := &cursor{data: data, pos: len(Header)}

	for !c.eof() {
		typ, err := parseHeading(c.line())
		if err != nil {
			return err
		}

		// prev links each rule of the section to the rule it was chained
		// from; it only lives while the section is being read.
		first := len(b.table.rules)
		var prev []int
		last := -1
		for {
			ch, ok := c.peek()
			if !ok || ch == '[' {
				break
			}
			rule, err := parseRule(c)
			if err != nil {
				return fmt.Errorf("section [%d:%s]: %w", typ.Priority, typ.Name, err)
			}
			idx := len(b.table.rules)
			b.table.rules = append(b.table.rules, rule)
			prev = append(prev, -1)

			parent := -1
			if rule.Nest > 0 {
				for p := last; p >= 0; p = prev[p-first] {
					if b.table.rules[p].Nest < rule.Nest {
						parent = p
						break
					}
				}
			}
			if parent < 0 {
				typ.Top = append(typ.Top, idx)
			} else {
				b.table.rules[parent].Next = idx
				prev[idx-first] = parent
			}
			last = idx

			if l := rule.Length(); l > b.table.maxLength {
				b.table.maxLength = l
			}
		}
		b.table.types = append(b.table.types, typ)
	}
	return nil
}

func parseHeading(line []byte) (Type, error) {
	if len(line) < 4 || line[0] != '[' || !bytes.HasSuffix(line, []byte("]\n")) {
		return Type{}, fmt.Errorf("malformed section heading %q", line)
	}
	pri, name, ok := bytes.Cut(line[1:len(line)-2], []byte(":"))
	if !ok {
		return Type{}, fmt.Errorf("malformed section heading %q", line)
	}
	priority, err := strconv.Atoi(string(pri))
	if err != nil {
		return Type{}, fmt.Errorf("bad priority in heading %q", line)
	}
	mime, err := mimetype.Parse(string(name))
	if err != nil {
		return Type{}, fmt.Errorf("bad type in heading %q", line)
	}
	return Type{Name: mime, Priority: priority}, nil
}

// parseRule reads one record:
//
//	[indent] '>' start '=' len(2, big-endian) value ['&' mask] ['~' word] ['+' range] '\n'
func parseRule(c *cursor) (Rule, error) {
	rule := Rule{WordSize: 1, RangeLength: 1, Next: -1}

	ch, ok := c.peek()
	if !ok {
		return rule, fmt.Errorf("unexpected end of file")
	}
	if ch != '>' {
		nest, err := c.number()
		if err != nil {
			return rule, err
		}
		rule.Nest = nest
	}
	if ch, _ := c.next(); ch != '>' {
		return rule, fmt.Errorf("missing '>' at offset %d", c.pos-1)
	}

	start, err := c.number()
	if err != nil {
		return rule, err
	}
	rule.StartOffset = start

	if ch, _ := c.next(); ch != '=' {
		return rule, fmt.Errorf("missing '=' at offset %d", c.pos-1)
	}

	lenBytes, ok := c.take(2)
	if !ok {
		return rule, fmt.Errorf("truncated value length")
	}
	n := int(binary.BigEndian.Uint16(lenBytes))
	value, ok := c.take(n)
	if !ok {
		return rule, fmt.Errorf("truncated value")
	}
	rule.Value = bytes.Clone(value)

	ch, _ = c.next()
	if ch == '&' {
		mask, ok := c.take(n)
		if !ok {
			return rule, fmt.Errorf("truncated mask")
		}
		rule.Mask = bytes.Clone(mask)
		ch, _ = c.next()
	}
	if ch == '~' {
		if rule.WordSize, err = c.number(); err != nil {
			return rule, err
		}
		ch, _ = c.next()
	}
	if ch == '+' {
		if rule.RangeLength, err = c.number(); err != nil {
			return rule, err
		}
		if rule.RangeLength < 1 {
			return rule, fmt.Errorf("range length must be at least 1")
		}
		ch, _ = c.next()
	}
	if ch != '\n' {
		return rule, fmt.Errorf("malformed rule terminator %q", ch)
	}
	return rule, nil
}
