// Package io reads and writes dashboard documents in every supported format.
//
// # Formats
//
// Three on-disk formats are recognized:
//
//   - [FormatStudio]: modern JSON definition text
//   - [FormatEnvelope]: the JSON definition wrapped in a
//     <dashboard version="2"> markup element, inside a CDATA section
//   - [FormatSimpleXML]: legacy <dashboard> or <form> markup
//
// [Detect] sniffs the format from the leading bytes of a document, so most
// callers can use [Read] or [Import] without naming the format:
//
//	doc, err := io.Import("ops.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch doc.Format {
//	case io.FormatSimpleXML:
//	    // doc.SimpleXML is set
//	default:
//	    // doc.Studio is set
//	}
//
// # Import
//
// Format-specific readers ([ReadStudio], [ReadEnvelope], [ReadSimpleXML])
// take an io.Reader; the Import variants open a file path. A missing file
// fails with [errors.ErrCodeFileNotFound]; decoding errors keep the codes
// of the underlying parser.
//
// # Export
//
// [WriteStudio], [WriteEnvelope] and [WriteSimpleXML] write to an
// io.Writer; the Export variants create a file. All writers end the output
// with a newline.
package io
