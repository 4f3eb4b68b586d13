// Package testutil builds document fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// EPUBFile is a single entry in a generated EPUB archive.
type EPUBFile struct {
	Name    string
	Content []byte
}

// EPUB builds an archive containing the mandatory container entry followed
// by files, in order.
func EPUB(files ...EPUBFile) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entries := append([]EPUBFile{
		{Name: "META-INF/container.xml", Content: []byte(containerXML)},
	}, files...)

	for _, f := range entries {
		fw, err := w.Create(f.Name)
		if err != nil {
			panic(err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Chapter returns a minimal XHTML chapter whose body is text.
func Chapter(text string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<html xmlns="http://www.w3.org/1999/xhtml"><body><p>` + text + `</p></body></html>`)
}

const containerXML = `<?xml version="1.0"?>` +
	`<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">` +
	`<rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>` +
	`</container>`

// PDF builds a single-page PDF that shows text in Helvetica.
func PDF(text string) []byte {
	escaped := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(text)
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escaped)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Corrupt returns bytes that no extractor accepts.
func Corrupt() []byte {
	return []byte("this is not a real document \x00\x01\x02")
}
