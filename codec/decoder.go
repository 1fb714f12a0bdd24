package codec

import (
	"context"
	"fmt"

	"github.com/tagwire/nbt/compress"
	"github.com/tagwire/nbt/endian"
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/internal/options"
	"github.com/tagwire/nbt/mutf8"
	"github.com/tagwire/nbt/progress"
	"github.com/tagwire/nbt/tag"
	"github.com/tagwire/nbt/wire"
)

// Decoder decodes one NBT document into a tag tree.
//
// Note: The Decoder is NOT reusable. After calling Decode, a new decoder
// must be created for further decoding.
type Decoder struct {
	data []byte
	cfg  decodeConfig
	done bool
}

// NewDecoder creates a Decoder for the given document bytes. The input may
// be gzip-framed, zlib-framed, or bare NBT; framing is sniffed on Decode.
func NewDecoder(data []byte, opts ...DecodeOption) (*Decoder, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil input", errs.ErrInternal)
	}

	d := &Decoder{data: data}
	if err := options.Apply(&d.cfg, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decode decompresses and parses the document.
//
// On errs.ErrLeftoverData the returned tree is valid and complete; the error
// only signals trailing bytes after the outermost tag. Every other error
// returns a nil tree.
func (d *Decoder) Decode(ctx context.Context) (*tag.Node, error) {
	if d.done {
		return nil, fmt.Errorf("%w: decoder already consumed its input", errs.ErrInternal)
	}
	d.done = true

	msgs := progress.Messages()
	d.cfg.tracker.Force(0, msgs.DecodeStart)

	payload, _, err := compress.Decompress(ctx, d.data, d.cfg.tracker)
	if err != nil {
		return nil, err
	}

	r := wire.NewReader(payload, endian.GetBigEndianEngine())

	root, err := d.parseTag(ctx, r, format.KindEnd, false)
	if err != nil {
		return nil, err
	}

	d.cfg.tracker.Force(100, msgs.DecodeFinished)

	if r.Remaining() > 0 {
		// The tree is complete; report the trailing garbage but let the
		// caller decide whether to keep the result.
		return root, fmt.Errorf("%w: %d trailing bytes", errs.ErrLeftoverData, r.Remaining())
	}

	return root, nil
}

// parseTag parses one tag. A kind of KindEnd means the real kind byte has
// not been read yet; list elements arrive with their kind pre-seeded and
// skipName set.
func (d *Decoder) parseTag(ctx context.Context, r *wire.Reader, kind format.TagKind, skipName bool) (*tag.Node, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}

	if kind == format.KindEnd {
		b, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}

		kind = format.TagKind(b)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: 0x%02X", errs.ErrBadTag, b)
		}
	}

	var name string
	var named bool
	if !skipName {
		raw, present, err := r.ReadName()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrBadKey, err)
		}
		if present {
			name, err = mutf8.Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errs.ErrBadKey, err)
			}
			named = true
		}
	}

	if r.Len() > 0 {
		d.cfg.tracker.Report(r.Cursor()*100/r.Len(), progress.Messages().DecodeStart)
	}

	node, err := d.parsePayload(ctx, r, kind)
	if err != nil {
		return nil, err
	}

	if named {
		if err := node.Rename(name); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
		}
	}

	return node, nil
}

func (d *Decoder) parsePayload(ctx context.Context, r *wire.Reader, kind format.TagKind) (*tag.Node, error) {
	switch kind {
	case format.KindByte:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}

		return tag.NewByte(v), nil
	case format.KindShort:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}

		return tag.NewShort(v), nil
	case format.KindInt:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		return tag.NewInt(v), nil
	case format.KindLong:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}

		return tag.NewLong(v), nil
	case format.KindFloat:
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}

		return tag.NewFloat(v), nil
	case format.KindDouble:
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}

		return tag.NewDouble(v), nil
	case format.KindByteArray:
		n, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}

		raw, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}

		return tag.NewByteArray(raw), nil
	case format.KindString:
		return d.parseString(r)
	case format.KindList:
		return d.parseList(ctx, r)
	case format.KindCompound:
		return d.parseCompound(ctx, r)
	case format.KindIntArray:
		return d.parseIntArray(r)
	case format.KindLongArray:
		return d.parseLongArray(r)
	default:
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrBadTag, uint8(kind))
	}
}

func (d *Decoder) parseString(r *wire.Reader) (*tag.Node, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}

	s, err := mutf8.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBadKey, err)
	}

	return tag.NewString(s), nil
}

func (d *Decoder) parseList(ctx context.Context, r *wire.Reader) (*tag.Node, error) {
	elemByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	elem := format.TagKind(elemByte)

	count, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if elem == format.KindEnd && count > 0 {
		return nil, fmt.Errorf("%w: %d elements", errs.ErrBadList, count)
	}

	list := tag.NewList(elem)
	for i := int32(0); i < count; i++ {
		child, err := d.parseTag(ctx, r, elem, true)
		if err != nil {
			return nil, err
		}

		if err := list.Append(child); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
		}
	}

	return list, nil
}

func (d *Decoder) parseCompound(ctx context.Context, r *wire.Reader) (*tag.Node, error) {
	comp := tag.NewCompound()

	for {
		if err := errs.FromContext(ctx); err != nil {
			return nil, err
		}

		b, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return comp, nil
		}

		kind := format.TagKind(b)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: 0x%02X", errs.ErrBadTag, b)
		}

		child, err := d.parseTag(ctx, r, kind, false)
		if err != nil {
			return nil, err
		}

		if err := comp.Append(child); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
		}
	}
}

func (d *Decoder) parseIntArray(r *wire.Reader) (*tag.Node, error) {
	count, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	raw, err := r.ReadBytes(int(count) * 4)
	if err != nil {
		return nil, err
	}

	engine := endian.GetBigEndianEngine()
	ints := make([]int32, count)
	for i := range ints {
		ints[i] = int32(engine.Uint32(raw[i*4:]))
	}

	return tag.NewIntArray(ints), nil
}

func (d *Decoder) parseLongArray(r *wire.Reader) (*tag.Node, error) {
	count, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	raw, err := r.ReadBytes(int(count) * 8)
	if err != nil {
		return nil, err
	}

	engine := endian.GetBigEndianEngine()
	longs := make([]int64, count)
	for i := range longs {
		longs[i] = int64(engine.Uint64(raw[i*8:]))
	}

	return tag.NewLongArray(longs), nil
}
