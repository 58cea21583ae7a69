// Package xml provides an XML codec implementation.
//
// Plain trees (map[string]any, []any, scalars, nil) are written as nested
// elements under a <root> element. Containers and non-string scalars carry a
// type attribute so a tree decoded into an *any comes back with the same
// shape. Map keys that are not valid element names are written as
// <entry key="...">; list items are written as <item>. Any other value is
// handed to encoding/xml unchanged.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const (
	rootElement  = "root"
	itemElement  = "item"
	entryElement = "entry"
)

// Codec implements replacer.Codec for XML.
type Codec struct{}

// New returns an XML codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for XML.
func (c *Codec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return c.MarshalIndent(v, "", "")
}

// MarshalIndent encodes v as XML with nested elements on their own lines.
func (c *Codec) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	if !isTree(v) {
		if prefix == "" && indent == "" {
			return xml.Marshal(v)
		}
		return xml.MarshalIndent(v, prefix, indent)
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent(prefix, indent)
	if err := encodeNode(enc, rootElement, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes XML data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	out, ok := v.(*any)
	if !ok {
		return xml.Unmarshal(data, v)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("xml: no root element")
			}
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			val, err := decodeElement(dec, start)
			if err != nil {
				return err
			}
			*out = val
			return nil
		}
	}
}

func isTree(v any) bool {
	switch v.(type) {
	case nil, map[string]any, []any, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func encodeNode(enc *xml.Encoder, name string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if !validName(name) {
		start.Name.Local = entryElement
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "key"}, Value: name})
	}

	var text string
	switch t := v.(type) {
	case nil:
		start.Attr = append(start.Attr, typeAttr("null"))
		return encodeEmpty(enc, start)
	case map[string]any:
		start.Attr = append(start.Attr, typeAttr("object"))
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := encodeNode(enc, k, t[k]); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	case []any:
		start.Attr = append(start.Attr, typeAttr("array"))
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, item := range t {
			if err := encodeNode(enc, itemElement, item); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	case string:
		text = t
	case bool:
		start.Attr = append(start.Attr, typeAttr("boolean"))
		text = strconv.FormatBool(t)
	case float32:
		start.Attr = append(start.Attr, typeAttr("number"))
		text = strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		start.Attr = append(start.Attr, typeAttr("number"))
		text = strconv.FormatFloat(t, 'g', -1, 64)
	default:
		start.Attr = append(start.Attr, typeAttr("number"))
		text = fmt.Sprint(t)
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeEmpty(enc *xml.Encoder, start xml.StartElement) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func typeAttr(typ string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: "type"}, Value: typ}
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	typ, _ := attr(start, "type")

	switch typ {
	case "object":
		m := make(map[string]any)
		err := decodeChildren(dec, func(child xml.StartElement) error {
			key, ok := attr(child, "key")
			if !ok {
				key = child.Name.Local
			}
			val, err := decodeElement(dec, child)
			if err != nil {
				return err
			}
			m[key] = val
			return nil
		})
		return m, err
	case "array":
		list := make([]any, 0)
		err := decodeChildren(dec, func(child xml.StartElement) error {
			val, err := decodeElement(dec, child)
			if err != nil {
				return err
			}
			list = append(list, val)
			return nil
		})
		return list, err
	case "null":
		return nil, dec.Skip()
	}

	var text strings.Builder
	err := decodeChildren(dec, func(xml.StartElement) error { return dec.Skip() }, func(cd xml.CharData) {
		text.Write(cd)
	})
	if err != nil {
		return nil, err
	}

	switch typ {
	case "number":
		return strconv.ParseFloat(strings.TrimSpace(text.String()), 64)
	case "boolean":
		return strconv.ParseBool(strings.TrimSpace(text.String()))
	default:
		return text.String(), nil
	}
}

// decodeChildren reads tokens up to the end of the current element, handing
// child elements to onChild and character data to the optional onText.
func decodeChildren(dec *xml.Decoder, onChild func(xml.StartElement) error, onText ...func(xml.CharData)) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := onChild(t); err != nil {
				return err
			}
		case xml.CharData:
			for _, fn := range onText {
				fn(t)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// validName reports whether s can be used as an XML element name as-is.
func validName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
