package codec

import (
	"context"
	"fmt"
	"io"

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

// Encoder serialises tag trees into NBT wire bytes.
//
// Unlike the Decoder, an Encoder is reusable: the configuration is immutable
// and each Encode call works on its own buffers.
type Encoder struct {
	cfg encodeConfig
}

// NewEncoder creates an Encoder. Without options the output is bare NBT
// bytes; use WithCompression to select gzip or zlib framing.
func NewEncoder(opts ...EncodeOption) (*Encoder, error) {
	e := &Encoder{
		cfg: encodeConfig{compression: format.CompressionNone},
	}
	if err := options.Apply(&e.cfg, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode walks the tree rooted at root and returns the compressed wire
// bytes.
//
// The tree itself cannot be malformed (the tag API upholds the structural
// invariants), so failures are limited to name transcoding, compression,
// and cancellation.
func (e *Encoder) Encode(ctx context.Context, root *tag.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", errs.ErrInternal)
	}

	msgs := progress.Messages()
	tracker := e.cfg.tracker
	tracker.Force(0, msgs.EncodeStart)

	w := wire.NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	walker := &treeWalker{total: countNodes(root), tracker: tracker}
	if err := walker.writeNamed(ctx, w, root); err != nil {
		return nil, err
	}

	out, err := compress.Compress(ctx, w.Bytes(), e.cfg.compression, e.cfg.level)
	if err != nil {
		return nil, err
	}

	tracker.Force(100, msgs.EncodeFinished)

	return out, nil
}

// EncodeTo encodes like Encode and streams the result into sink.
func (e *Encoder) EncodeTo(ctx context.Context, root *tag.Node, sink io.Writer) error {
	out, err := e.Encode(ctx, root)
	if err != nil {
		return err
	}

	if _, err := sink.Write(out); err != nil {
		return fmt.Errorf("writing encoded document: %w", err)
	}

	return nil
}

// treeWalker tracks progress across one recursive encode.
type treeWalker struct {
	total   int
	visited int
	tracker *progress.Tracker
}

func countNodes(n *tag.Node) int {
	total := 1
	for _, c := range n.Children() {
		total += countNodes(c)
	}

	return total
}

// writeNamed emits the name header (kind byte, name length, MUTF-8 name
// bytes) followed by the payload. It is used at the top level and inside
// compounds; list elements go through writePayload directly.
func (tw *treeWalker) writeNamed(ctx context.Context, w *wire.Writer, n *tag.Node) error {
	if err := errs.FromContext(ctx); err != nil {
		return err
	}

	w.WriteUint8(uint8(n.Kind()))

	if name, named := n.Name(); named {
		raw, err := mutf8.Encode(name)
		if err != nil {
			return err
		}
		w.WriteName(raw)
	} else {
		w.WriteName(nil)
	}

	return tw.writePayload(ctx, w, n)
}

func (tw *treeWalker) writePayload(ctx context.Context, w *wire.Writer, n *tag.Node) error {
	tw.visited++
	if tw.total > 0 {
		tw.tracker.Report(tw.visited*100/tw.total, progress.Messages().EncodeStart)
	}

	switch n.Kind() {
	case format.KindByte:
		v, _ := n.Int64()
		w.WriteInt8(int8(v))
	case format.KindShort:
		v, _ := n.Int64()
		w.WriteInt16(int16(v))
	case format.KindInt:
		v, _ := n.Int64()
		w.WriteInt32(int32(v))
	case format.KindLong:
		v, _ := n.Int64()
		w.WriteInt64(v)
	case format.KindFloat:
		v, _ := n.Float64()
		w.WriteFloat32(float32(v))
	case format.KindDouble:
		v, _ := n.Float64()
		w.WriteFloat64(v)
	case format.KindByteArray:
		raw, _ := n.Bytes()
		w.WriteInt32(int32(len(raw)))
		w.WriteBytes(raw)
	case format.KindString:
		s, _ := n.String()
		raw, err := mutf8.Encode(s)
		if err != nil {
			return err
		}
		w.WriteUint16(uint16(len(raw)))
		w.WriteBytes(raw)
	case format.KindList:
		return tw.writeList(ctx, w, n)
	case format.KindCompound:
		return tw.writeCompound(ctx, w, n)
	case format.KindIntArray:
		ints, _ := n.Ints()
		w.WriteInt32(int32(len(ints)))
		for _, v := range ints {
			w.WriteInt32(v)
		}
	case format.KindLongArray:
		longs, _ := n.Longs()
		w.WriteInt32(int32(len(longs)))
		for _, v := range longs {
			w.WriteInt64(v)
		}
	default:
		return fmt.Errorf("%w: cannot encode kind %s", errs.ErrInternal, n.Kind())
	}

	return nil
}

func (tw *treeWalker) writeList(ctx context.Context, w *wire.Writer, n *tag.Node) error {
	children := n.Children()

	// An empty list writes element kind End; a non-empty list takes the
	// element kind from its first child.
	if len(children) == 0 {
		w.WriteUint8(uint8(format.KindEnd))
		w.WriteInt32(0)

		return nil
	}

	w.WriteUint8(uint8(children[0].Kind()))
	w.WriteInt32(int32(len(children)))

	for _, c := range children {
		if err := errs.FromContext(ctx); err != nil {
			return err
		}
		if err := tw.writePayload(ctx, w, c); err != nil {
			return err
		}
	}

	return nil
}

func (tw *treeWalker) writeCompound(ctx context.Context, w *wire.Writer, n *tag.Node) error {
	for _, c := range n.Children() {
		if err := errs.FromContext(ctx); err != nil {
			return err
		}
		if err := tw.writeNamed(ctx, w, c); err != nil {
			return err
		}
	}

	w.WriteUint8(uint8(format.KindEnd))

	return nil
}
