package token

import (
	"fmt"
	"strconv"

	"github.com/pion/sdp/v3"
)

// Numeric tags used by new SDP format
const (
	sdpTagZero   = 0x00
	sdpTagInt16  = 0x01
	sdpTagInt32  = 0x02
	sdpTagString = 0x03
)

// Deprecated format flags
const (
	sdpOldVersion    = 0x01
	sdpOldOriginID   = 0x02
	sdpOldOriginNet  = 0x04
	sdpOldConnNet    = 0x08
	sdpOldTime       = 0x10
	sdpOldSecondPort = 0x20
	sdpOldCodec      = 0x40
	sdpOldAttributes = 0x80
)

// New format inclusion flags
const (
	sdpHasInfo          = 0x01
	sdpHasURI           = 0x02
	sdpHasEmail         = 0x04
	sdpHasPhone         = 0x08
	sdpHasConnection    = 0x10
	sdpHasBandwidth     = 0x20
	sdpHasTimeBlocks    = 0x40
	sdpHasSecondSession = 0x80
)

// New format default flags
const (
	sdpDefVersion      = 0x01
	sdpDefOriginVer    = 0x02
	sdpDefOriginNet    = 0x04
	sdpDefConnNet      = 0x08
	sdpDefTime         = 0x10
	sdpDefSessionName  = 0x20
	sdpDefMediaCounted = 0x40
)

// Time block, second session and media block flags
const (
	sdpTimeStartStop = 0x01
	sdpTimeRepeat    = 0x02

	sdpSessTimeZones = 0x01
	sdpSessKey       = 0x02
	sdpSessAttrs     = 0x04

	sdpMediaPortCount  = 0x01
	sdpMediaMultiCodec = 0x02
	sdpMediaInfo       = 0x04
	sdpMediaConnection = 0x08
	sdpMediaKey        = 0x10
	sdpMediaAttrs      = 0x20
	sdpMediaDefConnNet = 0x40
	sdpMediaDefRTPAVP  = 0x80
)

const defaultNetType = "IN IP4"

// sdpDecoder writes SDP text lines decoded from token stream.
type sdpDecoder struct {
	c    *Cursor
	dict *SessionDictionary
	out  []byte
}

// decodeSDP decodes SDP body that follows marker byte.
func decodeSDP(c *Cursor, dict *SessionDictionary, marker byte) ([]byte, error) {
	d := sdpDecoder{
		c:    c,
		dict: dict,
		out:  make([]byte, 0, 256),
	}

	var err error
	switch marker {
	case ctxSdpDeprecated:
		err = d.deprecated()
	case ctxSdp:
		err = d.current()
	default:
		return nil, fmt.Errorf("%w: body marker 0x%02x", ErrUnsupportedSdpToken, marker)
	}
	if err != nil {
		return nil, err
	}
	return d.out, nil
}

func (d *sdpDecoder) token() ([]byte, error) {
	return d.dict.Get(d.c)
}

// tag decodes numeric tag and following value.
func (d *sdpDecoder) tag() ([]byte, error) {
	t, err := d.c.ReadByte()
	if err != nil {
		return nil, err
	}
	switch t {
	case sdpTagZero:
		return []byte("0"), nil
	case sdpTagInt16:
		v, err := d.c.ReadUint16()
		if err != nil {
			return nil, err
		}
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case sdpTagInt32:
		v, err := d.c.ReadUint32()
		if err != nil {
			return nil, err
		}
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case sdpTagString:
		return d.token()
	}
	return nil, fmt.Errorf("%w: numeric tag 0x%02x", ErrUnsupportedSdpToken, t)
}

func (d *sdpDecoder) line(typ byte) {
	d.out = append(d.out, typ, '=')
}

func (d *sdpDecoder) end() {
	d.out = append(d.out, '\r', '\n')
}

// put appends next token followed by optional separator
func (d *sdpDecoder) put(sep string) error {
	v, err := d.token()
	if err != nil {
		return err
	}
	d.out = append(d.out, v...)
	d.out = append(d.out, sep...)
	return nil
}

func (d *sdpDecoder) putTag(sep string) error {
	v, err := d.tag()
	if err != nil {
		return err
	}
	d.out = append(d.out, v...)
	d.out = append(d.out, sep...)
	return nil
}

// tokenLine writes typ=token
func (d *sdpDecoder) tokenLine(typ byte) error {
	d.line(typ)
	if err := d.put(""); err != nil {
		return err
	}
	d.end()
	return nil
}

// netType writes explicit "net addrtype " or default.
func (d *sdpDecoder) netType(explicit bool) error {
	if !explicit {
		d.out = append(d.out, defaultNetType+" "...)
		return nil
	}
	if err := d.put(" "); err != nil {
		return err
	}
	return d.put(" ")
}

// attributes reads count byte and name/value pairs as a= lines.
func (d *sdpDecoder) attributes() error {
	n, err := d.c.ReadByte()
	if err != nil {
		return err
	}
	for i := 0; i < int(n); i++ {
		name, err := d.token()
		if err != nil {
			return err
		}
		d.line('a')
		d.out = append(d.out, name...)
		value, err := d.token()
		if err != nil {
			return err
		}
		if len(value) > 0 {
			d.out = append(d.out, ':')
			d.out = append(d.out, value...)
		}
		d.end()
	}
	return nil
}

// deprecated decodes old format:
//
//	v o s c t m a*
func (d *sdpDecoder) deprecated() error {
	flags, err := d.c.ReadByte()
	if err != nil {
		return err
	}

	d.line('v')
	if flags&sdpOldVersion != 0 {
		if err := d.put(""); err != nil {
			return err
		}
	} else {
		d.out = append(d.out, '0')
	}
	d.end()

	d.line('o')
	if err := d.put(" "); err != nil {
		return err
	}
	if flags&sdpOldOriginID != 0 {
		if err := d.put(" "); err != nil {
			return err
		}
		if err := d.put(" "); err != nil {
			return err
		}
	} else {
		d.out = append(d.out, "0 0 "...)
	}
	if err := d.netType(flags&sdpOldOriginNet != 0); err != nil {
		return err
	}
	if err := d.put(""); err != nil {
		return err
	}
	d.end()

	if err := d.tokenLine('s'); err != nil {
		return err
	}

	d.line('c')
	if err := d.netType(flags&sdpOldConnNet != 0); err != nil {
		return err
	}
	if err := d.put(""); err != nil {
		return err
	}
	d.end()

	d.line('t')
	if flags&sdpOldTime != 0 {
		if err := d.put(" "); err != nil {
			return err
		}
		if err := d.put(""); err != nil {
			return err
		}
	} else {
		d.out = append(d.out, "0 0"...)
	}
	d.end()

	d.line('m')
	if err := d.put(" "); err != nil {
		return err
	}
	if err := d.put(""); err != nil {
		return err
	}
	if flags&sdpOldSecondPort != 0 {
		d.out = append(d.out, '/')
		if err := d.put(""); err != nil {
			return err
		}
	}
	d.out = append(d.out, ' ')
	if err := d.put(" "); err != nil {
		return err
	}
	if flags&sdpOldCodec != 0 {
		if err := d.put(""); err != nil {
			return err
		}
	} else {
		d.out = append(d.out, '0')
	}
	d.end()

	if flags&sdpOldAttributes != 0 {
		return d.attributes()
	}
	return nil
}

// current decodes new format.
func (d *sdpDecoder) current() error {
	incl, err := d.c.ReadByte()
	if err != nil {
		return err
	}
	defs, err := d.c.ReadByte()
	if err != nil {
		return err
	}

	d.line('v')
	if defs&sdpDefVersion != 0 {
		d.out = append(d.out, '0')
	} else if err := d.putTag(""); err != nil {
		return err
	}
	d.end()

	if err := d.origin(defs); err != nil {
		return fmt.Errorf("sdp origin: %w", err)
	}

	d.line('s')
	if defs&sdpDefSessionName != 0 {
		d.out = append(d.out, '-')
	} else if err := d.put(""); err != nil {
		return err
	}
	d.end()

	for _, l := range []struct {
		flag byte
		typ  byte
	}{{sdpHasInfo, 'i'}, {sdpHasURI, 'u'}, {sdpHasEmail, 'e'}, {sdpHasPhone, 'p'}} {
		if incl&l.flag == 0 {
			continue
		}
		if err := d.tokenLine(l.typ); err != nil {
			return err
		}
	}

	if incl&sdpHasConnection != 0 {
		d.line('c')
		if err := d.netType(defs&sdpDefConnNet == 0); err != nil {
			return err
		}
		if err := d.put(""); err != nil {
			return err
		}
		d.end()
	}

	if incl&sdpHasBandwidth != 0 {
		d.line('b')
		if err := d.put(":"); err != nil {
			return err
		}
		if err := d.putTag(""); err != nil {
			return err
		}
		d.end()
	}

	if err := d.times(incl, defs); err != nil {
		return fmt.Errorf("sdp time: %w", err)
	}

	if incl&sdpHasSecondSession != 0 {
		if err := d.secondSession(); err != nil {
			return err
		}
	}

	count := 1
	if defs&sdpDefMediaCounted != 0 {
		n, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		count = int(n)
	}
	for i := 0; i < count; i++ {
		if err := d.media(); err != nil {
			return fmt.Errorf("sdp media %d: %w", i, err)
		}
	}
	return nil
}

// origin: o=user id version net addrtype addr
func (d *sdpDecoder) origin(defs byte) error {
	d.line('o')
	if err := d.put(" "); err != nil {
		return err
	}
	id, err := d.tag()
	if err != nil {
		return err
	}
	d.out = append(d.out, id...)
	d.out = append(d.out, ' ')
	if defs&sdpDefOriginVer != 0 {
		d.out = append(d.out, id...)
		d.out = append(d.out, ' ')
	} else if err := d.putTag(" "); err != nil {
		return err
	}
	if err := d.netType(defs&sdpDefOriginNet == 0); err != nil {
		return err
	}
	if err := d.put(""); err != nil {
		return err
	}
	d.end()
	return nil
}

func (d *sdpDecoder) times(incl, defs byte) error {
	if incl&sdpHasTimeBlocks == 0 {
		d.line('t')
		if defs&sdpDefTime != 0 {
			d.out = append(d.out, "0 0"...)
		} else {
			if err := d.putTag(" "); err != nil {
				return err
			}
			if err := d.putTag(""); err != nil {
				return err
			}
		}
		d.end()
		return nil
	}

	n, err := d.c.ReadByte()
	if err != nil {
		return err
	}
	if n == 0 {
		d.line('t')
		d.out = append(d.out, "0 0"...)
		d.end()
		return nil
	}

	for i := 0; i < int(n); i++ {
		flags, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		d.line('t')
		if flags&sdpTimeStartStop != 0 {
			if err := d.putTag(" "); err != nil {
				return err
			}
			if err := d.putTag(""); err != nil {
				return err
			}
		} else {
			d.out = append(d.out, "0 0"...)
		}
		d.end()

		if flags&sdpTimeRepeat == 0 {
			continue
		}
		d.line('r')
		if err := d.putTag(" "); err != nil {
			return err
		}
		if err := d.putTag(""); err != nil {
			return err
		}
		offsets, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		for j := 0; j < int(offsets); j++ {
			d.out = append(d.out, ' ')
			if err := d.putTag(""); err != nil {
				return err
			}
		}
		d.end()
	}
	return nil
}

// secondSession: z= k= a=
func (d *sdpDecoder) secondSession() error {
	flags, err := d.c.ReadByte()
	if err != nil {
		return err
	}

	if flags&sdpSessTimeZones != 0 {
		n, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		d.line('z')
		for i := 0; i < int(n); i++ {
			if i > 0 {
				d.out = append(d.out, ' ')
			}
			if err := d.putTag(" "); err != nil {
				return err
			}
			if err := d.put(""); err != nil {
				return err
			}
		}
		d.end()
	}

	if flags&sdpSessKey != 0 {
		if err := d.tokenLine('k'); err != nil {
			return err
		}
	}

	if flags&sdpSessAttrs != 0 {
		return d.attributes()
	}
	return nil
}

// media: m=name port[/count] transport codecs... then i c k a
func (d *sdpDecoder) media() error {
	flags, err := d.c.ReadByte()
	if err != nil {
		return err
	}

	d.line('m')
	if err := d.put(" "); err != nil {
		return err
	}
	if err := d.putTag(""); err != nil {
		return err
	}
	if flags&sdpMediaPortCount != 0 {
		d.out = append(d.out, '/')
		if err := d.putTag(""); err != nil {
			return err
		}
	}
	d.out = append(d.out, ' ')

	if flags&sdpMediaDefRTPAVP != 0 {
		d.out = append(d.out, "RTP/AVP"...)
	} else if err := d.put(""); err != nil {
		return err
	}

	codecs := 1
	if flags&sdpMediaMultiCodec != 0 {
		n, err := d.c.ReadByte()
		if err != nil {
			return err
		}
		codecs = int(n)
	}
	for i := 0; i < codecs; i++ {
		d.out = append(d.out, ' ')
		if err := d.putTag(""); err != nil {
			return err
		}
	}
	d.end()

	if flags&sdpMediaInfo != 0 {
		if err := d.tokenLine('i'); err != nil {
			return err
		}
	}

	if flags&sdpMediaConnection != 0 {
		d.line('c')
		if err := d.netType(flags&sdpMediaDefConnNet == 0); err != nil {
			return err
		}
		if err := d.put(""); err != nil {
			return err
		}
		d.end()
	}

	if flags&sdpMediaKey != 0 {
		if err := d.tokenLine('k'); err != nil {
			return err
		}
	}

	if flags&sdpMediaAttrs != 0 {
		return d.attributes()
	}
	return nil
}

// ParseSDP parses SDP body produced by decoder.
func ParseSDP(body []byte) (*sdp.SessionDescription, error) {
	s := &sdp.SessionDescription{}
	if err := s.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("parse sdp: %w", err)
	}
	return s, nil
}
