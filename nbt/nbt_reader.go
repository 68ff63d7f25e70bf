package nbt

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxDepth 防止恶意文件的无限嵌套
const maxDepth = 512

// maxPrealloc 按声明长度预分配的上限，长度字段来自文件，不可信
const maxPrealloc = 4096

// ErrTooDeep 嵌套层数超过上限
var ErrTooDeep = errors.New("nbt: nesting too deep")

// ReadGzip 从gzip压缩的流中读取根复合标签
func ReadGzip(r io.Reader) (string, Compound, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return "", nil, err
	}
	defer gz.Close()

	return Read(bufio.NewReader(gz))
}

// Read 读取未压缩的根复合标签
func Read(r io.Reader) (string, Compound, error) {
	var tagType byte
	if err := binary.Read(r, binary.BigEndian, &tagType); err != nil {
		return "", nil, err
	}
	if TagType(tagType) != TagCompound {
		return "", nil, fmt.Errorf("expected compound tag, got %d", tagType)
	}

	name, err := readString(r)
	if err != nil {
		return "", nil, err
	}
	root, err := readCompound(r, 1)
	if err != nil {
		return "", nil, err
	}
	return name, root, nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readLength(r io.Reader) (int32, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	return n, nil
}

// readCompound 读取复合标签的值，直到 TagEnd
func readCompound(r io.Reader, depth int) (Compound, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	comp := make(Compound)
	for {
		var tagType byte
		if err := binary.Read(r, binary.BigEndian, &tagType); err != nil {
			return nil, err
		}
		if TagType(tagType) == TagEnd {
			return comp, nil
		}

		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		value, err := readPayload(r, TagType(tagType), depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		comp[name] = value
	}
}

// readPayload 读取标签值
func readPayload(r io.Reader, t TagType, depth int) (any, error) {
	switch t {
	case TagByte:
		var v int8
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagShort:
		var v int16
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagInt:
		var v int32
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagLong:
		var v int64
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagFloat:
		var v float32
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagDouble:
		var v float64
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case TagByteArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case TagString:
		return readString(r)
	case TagList:
		return readList(r, depth+1)
	case TagCompound:
		return readCompound(r, depth+1)
	case TagIntArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		return readArray[int32](r, n)
	case TagLongArray:
		n, err := readLength(r)
		if err != nil {
			return nil, err
		}
		return readArray[int64](r, n)
	default:
		return nil, fmt.Errorf("unsupported tag type: %d", t)
	}
}

// readList 读取列表值
func readList(r io.Reader, depth int) (any, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	var elem byte
	if err := binary.Read(r, binary.BigEndian, &elem); err != nil {
		return nil, err
	}
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	if TagType(elem) == TagEnd && n > 0 {
		return nil, fmt.Errorf("list of %d end tags", n)
	}

	list := make([]any, 0, prealloc(n))
	for i := int32(0); i < n; i++ {
		v, err := readPayload(r, TagType(elem), depth)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func prealloc(n int32) int {
	return min(int(n), maxPrealloc)
}

// readArray 逐个读取数组元素，内存随实际读到的数据增长
func readArray[T int32 | int64](r io.Reader, n int32) ([]T, error) {
	v := make([]T, 0, prealloc(n))
	for i := int32(0); i < n; i++ {
		var x T
		if err := binary.Read(r, binary.BigEndian, &x); err != nil {
			return nil, err
		}
		v = append(v, x)
	}
	return v, nil
}
