// Package nbt 读写 Minecraft 的 NBT 格式（level.dat 等 gzip 压缩的命名标签树）
package nbt

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

// TagType 表示NBT标签类型
type TagType byte

const (
	TagEnd       TagType = 0x00
	TagByte      TagType = 0x01
	TagShort     TagType = 0x02
	TagInt       TagType = 0x03
	TagLong      TagType = 0x04
	TagFloat     TagType = 0x05
	TagDouble    TagType = 0x06
	TagByteArray TagType = 0x07
	TagString    TagType = 0x08
	TagList      TagType = 0x09
	TagCompound  TagType = 0x0a
	TagIntArray  TagType = 0x0b
	TagLongArray TagType = 0x0c
)

// Compound 复合标签
type Compound = map[string]any

// writeString 写入NBT字符串
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long: %d bytes", len(s))
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// writeHeader 写入标签类型与名称
func writeHeader(w io.Writer, t TagType, name string) error {
	if _, err := w.Write([]byte{byte(t)}); err != nil {
		return err
	}
	return writeString(w, name)
}

// WriteTag 写入一个命名标签
func WriteTag(w io.Writer, name string, value any) error {
	t := tagTypeOf(value)
	if t == TagEnd {
		return fmt.Errorf("unsupported type: %T", value)
	}
	if err := writeHeader(w, t, name); err != nil {
		return err
	}
	return writePayload(w, t, value)
}

// tagTypeOf 获取值对应的标签类型
func tagTypeOf(value any) TagType {
	switch value.(type) {
	case int8:
		return TagByte
	case int16:
		return TagShort
	case int32:
		return TagInt
	case int64:
		return TagLong
	case float32:
		return TagFloat
	case float64:
		return TagDouble
	case []byte:
		return TagByteArray
	case string:
		return TagString
	case []any:
		return TagList
	case Compound:
		return TagCompound
	case []int32:
		return TagIntArray
	case []int64:
		return TagLongArray
	default:
		return TagEnd
	}
}

// writePayload 写入标签值
func writePayload(w io.Writer, t TagType, value any) error {
	switch t {
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		return binary.Write(w, binary.BigEndian, value)
	case TagByteArray:
		v := value.([]byte)
		if err := binary.Write(w, binary.BigEndian, int32(len(v))); err != nil {
			return err
		}
		_, err := w.Write(v)
		return err
	case TagString:
		return writeString(w, value.(string))
	case TagList:
		list := value.([]any)
		elem := TagEnd
		if len(list) > 0 {
			elem = tagTypeOf(list[0])
		}
		if _, err := w.Write([]byte{byte(elem)}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, int32(len(list))); err != nil {
			return err
		}
		for _, item := range list {
			if tagTypeOf(item) != elem {
				return fmt.Errorf("mixed list element types: %T", item)
			}
			if err := writePayload(w, elem, item); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		comp := value.(Compound)
		keys := make([]string, 0, len(comp))
		for k := range comp {
			keys = append(keys, k)
		}
		// 保证输出稳定
		sort.Strings(keys)
		for _, k := range keys {
			if err := WriteTag(w, k, comp[k]); err != nil {
				return err
			}
		}
		_, err := w.Write([]byte{byte(TagEnd)})
		return err
	case TagIntArray, TagLongArray:
		var n int
		switch v := value.(type) {
		case []int32:
			n = len(v)
		case []int64:
			n = len(v)
		}
		if err := binary.Write(w, binary.BigEndian, int32(n)); err != nil {
			return err
		}
		return binary.Write(w, binary.BigEndian, value)
	default:
		return fmt.Errorf("unsupported tag type: %d", t)
	}
}

// WriteGzip 将根复合标签写入 gzip 压缩流
func WriteGzip(w io.Writer, name string, root Compound) error {
	var buf bytes.Buffer
	if err := WriteTag(&buf, name, root); err != nil {
		return err
	}

	gz := gzip.NewWriter(w)
	if _, err := buf.WriteTo(gz); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}
