// SPDX-License-Identifier: MIT
// Package mlp - binary model encoding.
//
// Wire layout (protobuf wire format, field numbers are stable):
//
//	1  version      varint
//	2  activation   varint
//	3  offsets      packed double   (standardizer, optional)
//	4  scales       packed double   (standardizer, optional)
//	5  classes      packed double   (optional)
//	6  layer        message, repeated:
//	     1 rows  varint
//	     2 cols  varint
//	     3 data  packed double, row-major
//	7  layer count  varint
//
// Unknown fields are skipped. The training history is not encoded.
package mlp

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/lvml/matrix"
	"google.golang.org/protobuf/encoding/protowire"
)

const modelVersion = 1

const (
	fieldVersion    protowire.Number = 1
	fieldActivation protowire.Number = 2
	fieldOffsets    protowire.Number = 3
	fieldScales     protowire.Number = 4
	fieldClasses    protowire.Number = 5
	fieldLayer      protowire.Number = 6
	fieldLayerCount protowire.Number = 7

	fieldLayerRows protowire.Number = 1
	fieldLayerCols protowire.Number = 2
	fieldLayerData protowire.Number = 3
)

func appendPacked(b []byte, num protowire.Number, vals []float64) []byte {
	inner := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		inner = protowire.AppendFixed64(inner, math.Float64bits(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, inner)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptModel, fmt.Sprintf(format, args...))
}

func consumePacked(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, corrupt("packed double length %d", len(b))
	}
	out := make([]float64, 0, len(b)/8)
	for len(b) > 0 {
		u, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return nil, corrupt("%v", protowire.ParseError(n))
		}
		out = append(out, math.Float64frombits(u))
		b = b[n:]
	}

	return out, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
// Errors: ErrNotFitted.
func (n *Network) MarshalBinary() ([]byte, error) {
	if !n.Fitted() {
		return nil, mlpErrorf("MarshalBinary", ErrNotFitted)
	}
	var b []byte
	b = appendVarint(b, fieldVersion, modelVersion)
	b = appendVarint(b, fieldActivation, uint64(n.act))
	b = appendVarint(b, fieldLayerCount, uint64(len(n.weights)))
	if n.std != nil {
		b = appendPacked(b, fieldOffsets, n.std.offset)
		b = appendPacked(b, fieldScales, n.std.scale)
	}
	if len(n.classes) > 0 {
		b = appendPacked(b, fieldClasses, n.classes)
	}
	for _, w := range n.weights {
		var layer []byte
		layer = appendVarint(layer, fieldLayerRows, uint64(w.Rows()))
		layer = appendVarint(layer, fieldLayerCols, uint64(w.Cols()))
		layer = appendPacked(layer, fieldLayerData, w.Values())
		b = protowire.AppendTag(b, fieldLayer, protowire.BytesType)
		b = protowire.AppendBytes(b, layer)
	}

	return b, nil
}

func decodeLayer(b []byte) (*matrix.Dense, error) {
	var (
		rows, cols uint64
		data       []float64
		seenData   bool
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, corrupt("layer tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldLayerRows && typ == protowire.VarintType:
			rows, n = protowire.ConsumeVarint(b)
		case num == fieldLayerCols && typ == protowire.VarintType:
			cols, n = protowire.ConsumeVarint(b)
		case num == fieldLayerData && typ == protowire.BytesType:
			var raw []byte
			if raw, n = protowire.ConsumeBytes(b); n >= 0 {
				var err error
				if data, err = consumePacked(raw); err != nil {
					return nil, err
				}
				seenData = true
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, corrupt("layer field %d: %v", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	if !seenData || rows < 2 || cols < 1 || rows > math.MaxInt32 || cols > math.MaxInt32 ||
		uint64(len(data)) != rows*cols {
		return nil, corrupt("layer %d×%d with %d values", rows, cols, len(data))
	}
	w, err := matrix.NewDenseFrom(int(rows), int(cols), data)
	if err != nil {
		return nil, corrupt("layer: %v", err)
	}

	return w, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The network keeps
// its Source; everything else is replaced only if data decodes cleanly.
// Errors: ErrCorruptModel.
func (n *Network) UnmarshalBinary(data []byte) error {
	const op = "UnmarshalBinary"
	var (
		version          uint64
		act              uint64
		layerCount       uint64
		offsets, scales  []float64
		classes          []float64
		weights          []*matrix.Dense
		hasOffs, hasScal bool
	)
	b := data
	for len(b) > 0 {
		num, typ, k := protowire.ConsumeTag(b)
		if k < 0 {
			return mlpErrorf(op, corrupt("tag: %v", protowire.ParseError(k)))
		}
		b = b[k:]
		var (
			raw []byte
			err error
		)
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, k = protowire.ConsumeVarint(b)
		case num == fieldActivation && typ == protowire.VarintType:
			act, k = protowire.ConsumeVarint(b)
		case num == fieldLayerCount && typ == protowire.VarintType:
			layerCount, k = protowire.ConsumeVarint(b)
		case (num == fieldOffsets || num == fieldScales || num == fieldClasses || num == fieldLayer) &&
			typ == protowire.BytesType:
			if raw, k = protowire.ConsumeBytes(b); k < 0 {
				break
			}
			switch num {
			case fieldOffsets:
				offsets, err = consumePacked(raw)
				hasOffs = true
			case fieldScales:
				scales, err = consumePacked(raw)
				hasScal = true
			case fieldClasses:
				classes, err = consumePacked(raw)
			case fieldLayer:
				var w *matrix.Dense
				if w, err = decodeLayer(raw); err == nil {
					weights = append(weights, w)
				}
			}
		default:
			k = protowire.ConsumeFieldValue(num, typ, b)
		}
		if k < 0 {
			return mlpErrorf(op, corrupt("field %d: %v", num, protowire.ParseError(k)))
		}
		if err != nil {
			return mlpErrorf(op, err)
		}
		b = b[k:]
	}

	if version != modelVersion {
		return mlpErrorf(op, corrupt("version %d", version))
	}
	activation := Activation(act)
	if act > uint64(Linear) {
		return mlpErrorf(op, corrupt("activation %d", act))
	}
	if len(weights) == 0 || uint64(len(weights)) != layerCount {
		return mlpErrorf(op, corrupt("%d layers decoded, %d declared", len(weights), layerCount))
	}
	for l := 1; l < len(weights); l++ {
		if weights[l].Rows() != weights[l-1].Cols()+1 {
			return mlpErrorf(op, fmt.Errorf("%w: layer %d: %w", ErrCorruptModel, l, ErrTopology))
		}
	}
	var std *Standardizer
	if hasOffs != hasScal {
		return mlpErrorf(op, corrupt("standardizer offsets without scales"))
	}
	if hasOffs {
		s, err := newStandardizer(offsets, scales)
		if err != nil {
			return mlpErrorf(op, errors.Join(ErrCorruptModel, err))
		}
		if s.Width() != weights[0].Rows()-1 {
			return mlpErrorf(op, corrupt("standardizer width %d, inputs %d", s.Width(), weights[0].Rows()-1))
		}
		std = s
	}
	if len(classes) > 0 && len(classes) != weights[len(weights)-1].Cols() {
		return mlpErrorf(op, corrupt("%d classes, %d outputs", len(classes), weights[len(weights)-1].Cols()))
	}

	n.act, n.weights, n.std, n.classes, n.history = activation, weights, std, classes, nil
	if n.src == nil {
		n.src = NewSource(0)
	}

	return nil
}

// SaveFile writes the encoded model to path.
func (n *Network) SaveFile(path string) error {
	b, err := n.MarshalBinary()
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, b, 0o644); err != nil {
		return mlpErrorf("SaveFile", err)
	}

	return nil
}

// LoadFile reads a model written by SaveFile into a new Network.
func LoadFile(path string, src Source) (*Network, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, mlpErrorf("LoadFile", err)
	}
	n := New(src)
	if err = n.UnmarshalBinary(b); err != nil {
		return nil, mlpErrorf("LoadFile", err)
	}

	return n, nil
}
