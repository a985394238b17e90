package journal

import (
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"floodnet/internal/domain"
)

const (
	fieldRun  = "run"
	fieldSeq  = "seq"
	fieldNode = "node"
	fieldText = "text"
	fieldAt   = "at"
)

func valueToProto(v any) (*structpb.Value, error) {
	switch val := v.(type) {
	case string:
		return structpb.NewStringValue(val), nil
	case uint64:
		// Kept as a string: NumberValue is a float64 and would lose precision.
		return structpb.NewStringValue(strconv.FormatUint(val, 10)), nil
	case domain.NodeID:
		return structpb.NewStringValue(val.String()), nil
	case time.Time:
		return structpb.NewStringValue(val.UTC().Format(time.RFC3339Nano)), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func encodeRecord(r Record) ([]byte, error) {
	fields := map[string]any{
		fieldRun:  r.Run,
		fieldSeq:  r.Seq,
		fieldNode: r.Node,
		fieldText: r.Text,
		fieldAt:   r.At,
	}

	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		pv, err := valueToProto(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		s.Fields[k] = pv
	}
	return proto.Marshal(s)
}

func decodeRecord(data []byte) (Record, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return Record{}, fmt.Errorf("unmarshal record: %w", err)
	}

	str := func(key string) (string, error) {
		v, ok := s.Fields[key]
		if !ok {
			return "", fmt.Errorf("record missing %q: %w", key, ErrCorrupt)
		}
		return v.GetStringValue(), nil
	}

	var r Record
	var err error
	if r.Run, err = str(fieldRun); err != nil {
		return Record{}, err
	}
	if r.Text, err = str(fieldText); err != nil {
		return Record{}, err
	}

	raw, err := str(fieldSeq)
	if err != nil {
		return Record{}, err
	}
	if r.Seq, err = strconv.ParseUint(raw, 10, 64); err != nil {
		return Record{}, fmt.Errorf("seq %q: %w", raw, ErrCorrupt)
	}

	if raw, err = str(fieldNode); err != nil {
		return Record{}, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("node %q: %w", raw, ErrCorrupt)
	}
	r.Node = domain.NodeID(id)

	if raw, err = str(fieldAt); err != nil {
		return Record{}, err
	}
	if r.At, err = time.Parse(time.RFC3339Nano, raw); err != nil {
		return Record{}, fmt.Errorf("at %q: %w", raw, ErrCorrupt)
	}

	return r, nil
}
