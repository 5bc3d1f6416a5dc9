package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/eyad6789/images-with-memory/models"
)

// Namespace URIs used in the XMP packet.
const (
	xmpMemoryInkNS = "http://ns.memoryink.app/1.0/"
	xmpDublinCore  = "http://purl.org/dc/elements/1.1/"
)

// xmpProperties is the parsed view of the packet slots this codec
// reads. Nil pointers distinguish "absent" from "present but empty".
type xmpProperties struct {
	note        *string
	description *string
	encrypted   *string
	version     *string
}

// buildXMPPacket renders a complete packet carrying the owned
// properties, used when an image has no XMP yet.
func buildXMPPacket(note models.Note) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xpacket begin="` + "﻿" + `" id="W5M0MpCehiHzreSzNTczkc9d"?>` + "\n")
	buf.WriteString(`<x:xmpmeta xmlns:x="adobe:ns:meta/">` + "\n")
	buf.WriteString(` <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` + "\n")
	buf.WriteString(`  <rdf:Description rdf:about="">` + "\n")
	buf.WriteString(ownedPropertyFragment(note))
	buf.WriteString(`  </rdf:Description>` + "\n")
	buf.WriteString(` </rdf:RDF>` + "\n")
	buf.WriteString(`</x:xmpmeta>` + "\n")
	buf.WriteString(`<?xpacket end="w"?>`)

	return buf.Bytes()
}

// ownedPropertyFragment renders the property elements this codec owns.
// Each element declares its own namespace, so the fragment is valid in
// any host rdf:Description regardless of the packet's declarations.
func ownedPropertyFragment(note models.Note) string {
	flag := PlaintextMarker
	if note.IsEncrypted {
		flag = EncryptedMarker
	}
	escaped := xmlEscape(note.Content)

	var sb strings.Builder
	sb.WriteString(`   <dc:description xmlns:dc="` + xmpDublinCore + `">` +
		`<rdf:Alt><rdf:li xml:lang="x-default">` + escaped + `</rdf:li></rdf:Alt>` +
		`</dc:description>` + "\n")
	sb.WriteString(`   <memoryink:Note xmlns:memoryink="` + xmpMemoryInkNS + `">` +
		escaped + `</memoryink:Note>` + "\n")
	sb.WriteString(`   <memoryink:Encrypted xmlns:memoryink="` + xmpMemoryInkNS + `">` +
		flag + `</memoryink:Encrypted>` + "\n")
	sb.WriteString(`   <memoryink:Version xmlns:memoryink="` + xmpMemoryInkNS + `">` +
		xmlEscape(note.Version) + `</memoryink:Version>` + "\n")

	return sb.String()
}

// spliceXMPPacket rewrites an existing packet in place: previously
// written owned properties are removed and the current ones inserted
// into the first rdf:Description element. Foreign properties are left
// byte-identical. Returns ok == false when the packet has no usable
// rdf:Description anchor, in which case the caller must leave the
// packet untouched.
func spliceXMPPacket(existing []byte, note models.Note) ([]byte, bool) {
	cleaned := existing
	for _, name := range []string{"dc:description", "memoryink:Note", "memoryink:Encrypted", "memoryink:Version"} {
		cleaned = removeXMLElement(cleaned, name)
	}
	for _, name := range []string{"memoryink:Note", "memoryink:Encrypted", "memoryink:Version"} {
		cleaned = removeXMLAttr(cleaned, name)
	}

	anchor := bytes.Index(cleaned, []byte("</rdf:Description>"))
	if anchor < 0 {
		return nil, false
	}

	var buf bytes.Buffer
	buf.Write(cleaned[:anchor])
	buf.WriteString(ownedPropertyFragment(note))
	buf.Write(cleaned[anchor:])

	return buf.Bytes(), true
}

// parseXMPPacket scans a packet for the owned properties. The scan is
// deliberately lenient: it tolerates element and attribute forms,
// unknown wrappers, and packets written by other tools. The first
// occurrence of each property in document order wins.
func parseXMPPacket(packet []byte) xmpProperties {
	var props xmpProperties

	dec := xml.NewDecoder(bytes.NewReader(packet))
	dec.Strict = false

	// capture accumulates the character data of one memoryink element,
	// committed to captureSlot when the element closes. descDepth does
	// the same for the rdf:Alt structure inside dc:description.
	var capture *strings.Builder
	var captureSlot **string
	var descBuf *strings.Builder
	descDepth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF || err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if descDepth > 0 {
				descDepth++
			}

			switch {
			case matchesNS(t.Name, xmpMemoryInkNS, "memoryink"):
				var slot **string
				switch t.Name.Local {
				case "Note":
					slot = &props.note
				case "Encrypted":
					slot = &props.encrypted
				case "Version":
					slot = &props.version
				}
				if slot != nil && *slot == nil {
					capture = &strings.Builder{}
					captureSlot = slot
				}
			case matchesNS(t.Name, xmpDublinCore, "dc") && t.Name.Local == "description":
				if props.description == nil && descDepth == 0 {
					descDepth = 1
					descBuf = &strings.Builder{}
				}
			}

			// Attribute-form properties on any element.
			for _, attr := range t.Attr {
				v := attr.Value
				switch {
				case matchesNS(attr.Name, xmpMemoryInkNS, "memoryink"):
					switch attr.Name.Local {
					case "Note":
						setFirst(&props.note, v)
					case "Encrypted":
						setFirst(&props.encrypted, v)
					case "Version":
						setFirst(&props.version, v)
					}
				case matchesNS(attr.Name, xmpDublinCore, "dc") && attr.Name.Local == "description":
					setFirst(&props.description, v)
				}
			}

		case xml.CharData:
			if capture != nil {
				capture.Write(t)
			} else if descDepth > 0 && len(bytes.TrimSpace(t)) > 0 {
				descBuf.Write(t)
			}

		case xml.EndElement:
			if capture != nil {
				v := capture.String()
				*captureSlot = &v
				capture = nil
				captureSlot = nil
			}
			if descDepth > 0 {
				descDepth--
				if descDepth == 0 {
					v := descBuf.String()
					props.description = &v
					descBuf = nil
				}
			}
		}
	}

	return props
}

// matchesNS reports whether a name belongs to the given namespace URI,
// also accepting the bare prefix the decoder leaves when a packet
// never declared it.
func matchesNS(name xml.Name, uri, prefix string) bool {
	return name.Space == uri || name.Space == prefix
}

// setFirst assigns v to *slot only when the slot is still empty, so
// the first occurrence in document order wins.
func setFirst(slot **string, v string) {
	if *slot == nil {
		*slot = &v
	}
}

// removeXMLElement strips every "<name ...>...</name>" (or
// self-closing "<name .../>") range from b. The element name is
// matched textually, which is exact for properties this codec wrote
// itself and best-effort for foreign shapes.
func removeXMLElement(b []byte, name string) []byte {
	open := []byte("<" + name)
	close := []byte("</" + name + ">")

	from := 0
	for {
		i := bytes.Index(b[from:], open)
		if i < 0 {
			return b
		}
		i += from

		// The next byte must end the element name, not extend it.
		if j := i + len(open); j < len(b) && b[j] != ' ' && b[j] != '>' && b[j] != '/' && b[j] != '\t' && b[j] != '\n' {
			from = i + 1
			continue
		}

		tagEnd := bytes.IndexByte(b[i:], '>')
		if tagEnd < 0 {
			return b
		}
		tagEnd += i

		var end int
		if b[tagEnd-1] == '/' {
			end = tagEnd + 1 // self-closing
		} else {
			c := bytes.Index(b[tagEnd:], close)
			if c < 0 {
				return b
			}
			end = tagEnd + c + len(close)
		}

		cut := make([]byte, 0, len(b)-(end-i))
		cut = append(cut, b[:i]...)
		cut = append(cut, b[end:]...)
		b = cut
		from = i
	}
}

// removeXMLAttr strips every ` name="..."` attribute occurrence from b.
func removeXMLAttr(b []byte, name string) []byte {
	marker := []byte(" " + name + "=")

	from := 0
	for {
		i := bytes.Index(b[from:], marker)
		if i < 0 {
			return b
		}
		i += from

		vStart := i + len(marker)
		if vStart >= len(b) || (b[vStart] != '"' && b[vStart] != '\'') {
			from = i + 1
			continue
		}
		quote := b[vStart]
		vEnd := bytes.IndexByte(b[vStart+1:], quote)
		if vEnd < 0 {
			return b
		}
		end := vStart + 1 + vEnd + 1

		cut := make([]byte, 0, len(b)-(end-i))
		cut = append(cut, b[:i]...)
		cut = append(cut, b[end:]...)
		b = cut
		from = i
	}
}

// xmlEscape renders s safe for use as XML character data.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return fmt.Sprintf("%q", s)
	}

	return buf.String()
}
