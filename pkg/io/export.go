package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dashbridge/pkg/simplexml"
	"github.com/matzehuels/dashbridge/pkg/studio"
)

// WriteStudio serializes d as canonical JSON to w.
func WriteStudio(d *studio.Dashboard, w io.Writer) error {
	text, err := studio.Serialize(d)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteEnvelope serializes d and writes it wrapped in an envelope with the
// given id. The wrapper template already ends in a newline.
func WriteEnvelope(d *studio.Dashboard, id string, w io.Writer) error {
	text, err := studio.Envelope(d, id)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteSimpleXML writes d as legacy markup to w.
func WriteSimpleXML(d *simplexml.Dashboard, w io.Writer) error {
	return simplexml.Encode(w, d)
}

// ExportStudio writes d as JSON to a file at path.
func ExportStudio(d *studio.Dashboard, path string) error {
	return export(path, func(w io.Writer) error { return WriteStudio(d, w) })
}

// ExportEnvelope writes d as an envelope to a file at path.
func ExportEnvelope(d *studio.Dashboard, id, path string) error {
	return export(path, func(w io.Writer) error { return WriteEnvelope(d, id, w) })
}

// ExportSimpleXML writes d as legacy markup to a file at path.
func ExportSimpleXML(d *simplexml.Dashboard, path string) error {
	return export(path, func(w io.Writer) error { return WriteSimpleXML(d, w) })
}

func export(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
