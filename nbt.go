// Package nbt reads, writes, and manipulates Minecraft's NBT binary format
// and the Anvil region files that pack compressed NBT chunk blobs.
//
// NBT ("Named Binary Tag") is a hierarchical binary format: a tree of typed,
// optionally named tags, big-endian on the wire, with strings in Modified
// UTF-8 and the whole document usually gzip- or zlib-framed. A region file
// multiplexes up to 1024 such documents behind a 4 KiB-sector offset table.
//
// # Basic Usage
//
// Decoding a document (framing is sniffed automatically):
//
//	import "github.com/tagwire/nbt"
//
//	root, err := nbt.Decode(ctx, data)
//	if err != nil {
//	    return err
//	}
//	if pos := root.ChildNamed("Pos"); pos != nil {
//	    ...
//	}
//
// Building and encoding a document:
//
//	root := tag.NewCompound()
//	level := tag.NewString("flat")
//	_ = level.Rename("generator")
//	_ = root.Append(level)
//
//	data, err := nbt.EncodeCompressed(ctx, root, format.CompressionGzip)
//
// Working with region files:
//
//	reg, err := nbt.ReadRegion(ctx, data, region.WithFileName("r.0.0.mca"))
//	if err != nil {
//	    return err
//	}
//	trees, failures, err := reg.ParseAll(ctx)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// region packages, simplifying the most common use cases. For fine-grained
// control (progress callbacks, compression levels, lenient chunk reading),
// use the codec and region packages directly.
package nbt

import (
	"context"

	"github.com/tagwire/nbt/codec"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/region"
	"github.com/tagwire/nbt/tag"
)

// Decode parses an NBT document into a tag tree. The input may be
// gzip-framed, zlib-framed, or bare NBT bytes.
//
// On errs.ErrLeftoverData the returned tree is valid; the error reports
// trailing bytes after the outermost tag.
func Decode(ctx context.Context, data []byte, opts ...codec.DecodeOption) (*tag.Node, error) {
	d, err := codec.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode(ctx)
}

// Encode serialises a tag tree to bare NBT bytes.
func Encode(ctx context.Context, root *tag.Node) ([]byte, error) {
	return EncodeCompressed(ctx, root, format.CompressionNone)
}

// EncodeCompressed serialises a tag tree with the given output framing.
func EncodeCompressed(ctx context.Context, root *tag.Node, ctype format.CompressionType) ([]byte, error) {
	e, err := codec.NewEncoder(codec.WithCompression(ctype))
	if err != nil {
		return nil, err
	}

	return e.Encode(ctx, root)
}

// ReadRegion parses an Anvil region file image.
func ReadRegion(ctx context.Context, data []byte, opts ...region.ReadOption) (*region.Region, error) {
	return region.Read(ctx, data, opts...)
}
