package io

import (
	"bytes"
	"encoding/xml"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

// Format names a dashboard document format.
type Format string

const (
	FormatStudio    Format = "studio"
	FormatEnvelope  Format = "envelope"
	FormatSimpleXML Format = "simplexml"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatStudio, FormatEnvelope, FormatSimpleXML}

// envelopeVersion marks the root element of an envelope.
const envelopeVersion = "2"

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	valid := make([]string, len(Formats))
	for i, f := range Formats {
		valid[i] = string(f)
	}
	if err := errors.ValidateFormatName(name, valid...); err != nil {
		return "", err
	}
	return Format(name), nil
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Detect reports the format of data from its first significant bytes.
//
// JSON text (leading '{') is [FormatStudio]. Markup whose root element is
// <dashboard version="2"> is [FormatEnvelope]; any other markup is
// [FormatSimpleXML]. Anything else fails with [errors.ErrCodeInvalidFormat].
func Detect(data []byte) (Format, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) == 0 {
		return "", errors.New(errors.ErrCodeInvalidFormat, "empty document")
	}

	switch trimmed[0] {
	case '{':
		return FormatStudio, nil
	case '<':
		root, ok := rootElement(trimmed)
		if ok && root.Name.Local == "dashboard" && attrValue(root, "version") == envelopeVersion {
			return FormatEnvelope, nil
		}
		return FormatSimpleXML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unrecognized document: starts with %q", trimmed[0])
}

var utf8BOM = []byte("\xef\xbb\xbf")

// rootElement returns the first start element of markup. Tokenizer errors
// are left for the real parser to report.
func rootElement(markup []byte) (xml.StartElement, bool) {
	dec := xml.NewDecoder(bytes.NewReader(markup))
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, true
		}
	}
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
