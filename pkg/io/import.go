package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dashbridge/pkg/errors"
	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// Document is a decoded dashboard in its source format. Exactly one of
// Studio and SimpleXML is set: Studio for [FormatStudio] and
// [FormatEnvelope], SimpleXML for [FormatSimpleXML].
type Document struct {
	Format    Format
	Studio    *studio.Dashboard
	SimpleXML *simplexml.Dashboard

	// EnvelopeID is the id attribute of an envelope's root element.
	EnvelopeID string
}

// ReadStudio decodes modern JSON text from r.
func ReadStudio(r io.Reader) (*studio.Dashboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return studio.Parse(data)
}

// ReadEnvelope decodes an envelope from r and returns the embedded
// dashboard.
func ReadEnvelope(r io.Reader) (*studio.Dashboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return studio.ParseEnvelope(data)
}

// ReadSimpleXML decodes legacy markup from r.
func ReadSimpleXML(r io.Reader) (*simplexml.Dashboard, error) {
	return simplexml.Decode(r)
}

// Read decodes a document from r, detecting its format with [Detect].
// Read does not close r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// Decode is [Read] for an in-memory document.
func Decode(data []byte) (*Document, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	return DecodeAs(data, format)
}

// DecodeAs decodes data in the given format without sniffing.
func DecodeAs(data []byte, format Format) (*Document, error) {
	doc := &Document{Format: format}
	var err error
	switch format {
	case FormatStudio:
		doc.Studio, err = studio.Parse(data)
	case FormatEnvelope:
		doc.Studio, err = studio.ParseEnvelope(data)
		if err == nil {
			if root, ok := rootElement(bytes.TrimPrefix(data, utf8BOM)); ok {
				doc.EnvelopeID = attrValue(root, "id")
			}
		}
	case FormatSimpleXML:
		doc.SimpleXML, err = simplexml.Parse(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Items counts the visualizations, data sources and inputs of the document.
func (d *Document) Items() int {
	switch {
	case d.Studio != nil:
		return len(d.Studio.Visualizations) + len(d.Studio.DataSources) + len(d.Studio.Inputs)
	case d.SimpleXML != nil:
		return len(d.SimpleXML.Panels()) + len(d.SimpleXML.Searches) + len(d.SimpleXML.Inputs())
	}
	return 0
}

// ImportStudio reads a modern JSON file at path.
func ImportStudio(path string) (*studio.Dashboard, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadStudio(f)
}

// ImportEnvelope reads an envelope file at path.
func ImportEnvelope(path string) (*studio.Dashboard, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEnvelope(f)
}

// ImportSimpleXML reads a legacy markup file at path.
func ImportSimpleXML(path string) (*simplexml.Dashboard, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSimpleXML(f)
}

// Import reads the file at path in its detected format.
func Import(path string) (*Document, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
