// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"encoding/xml"
	"io"
	"strings"
)

const (
	xmlHeader    = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	matrixOpen   = `<compatibility-matrix version="2.0" type="framework">` + "\n"
	matrixClose  = "</compatibility-matrix>\n"
	indentLevel1 = "    "
	indentLevel2 = indentLevel1 + indentLevel1
)

// Render serializes the matrix. Entries are ordered by name, versions by
// major, interfaces by name and instances lexicographically, so the output is
// byte-for-byte reproducible for a given set of identifiers.
func (b *Builder) Render() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(matrixOpen)
	for _, e := range b.Entries() {
		writeEntry(&sb, e)
	}
	sb.WriteString(matrixClose)
	return sb.String()
}

// Fragment renders the <hal> block of a single entry.
func (e *Entry) Fragment() string {
	var sb strings.Builder
	writeEntry(&sb, e)
	return sb.String()
}

func writeEntry(sb *strings.Builder, e *Entry) {
	sb.WriteString(`<hal format="`)
	sb.WriteString(e.Scheme.Format())
	sb.WriteString(`" optional="true">` + "\n")
	writeElement(sb, indentLevel1, "name", e.Name)

	for _, v := range e.Versions() {
		writeElement(sb, indentLevel1, "version", v.String())
	}

	for _, iface := range e.Interfaces() {
		sb.WriteString(indentLevel1 + "<interface>\n")
		writeElement(sb, indentLevel2, "name", iface.Name)
		for _, inst := range iface.Instances() {
			writeElement(sb, indentLevel2, "instance", inst)
		}
		sb.WriteString(indentLevel1 + "</interface>\n")
	}

	sb.WriteString("</hal>\n")
}

func writeElement(sb *strings.Builder, indent, tag, text string) {
	sb.WriteString(indent)
	sb.WriteString("<" + tag + ">")
	escapeText(sb, text)
	sb.WriteString("</" + tag + ">\n")
}

func escapeText(w io.Writer, s string) {
	// xml.EscapeText only fails when w fails; strings.Builder never does.
	_ = xml.EscapeText(w, []byte(s))
}
