package codec

import (
	"strings"
	"testing"

	"github.com/eyad6789/images-with-memory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Packet building ---

func TestBuildXMPPacket_ParsesBack(t *testing.T) {
	note := models.Note{Content: "Summer 2023 - Maya's first steps", Version: "1.2.0"}

	props := parseXMPPacket(buildXMPPacket(note))

	require.NotNil(t, props.note)
	assert.Equal(t, note.Content, *props.note)
	require.NotNil(t, props.description)
	assert.Equal(t, note.Content, *props.description)
	require.NotNil(t, props.encrypted)
	assert.Equal(t, PlaintextMarker, *props.encrypted)
	require.NotNil(t, props.version)
	assert.Equal(t, "1.2.0", *props.version)
}

func TestBuildXMPPacket_EncryptedFlag(t *testing.T) {
	note := models.Note{Content: "opaque envelope", IsEncrypted: true, Version: "1.2.0"}

	props := parseXMPPacket(buildXMPPacket(note))

	require.NotNil(t, props.encrypted)
	assert.Equal(t, EncryptedMarker, *props.encrypted)
}

func TestBuildXMPPacket_EmptyNote(t *testing.T) {
	props := parseXMPPacket(buildXMPPacket(models.Note{Version: "1.0.0"}))

	require.NotNil(t, props.note, "an empty note is present, not absent")
	assert.Empty(t, *props.note)
	require.NotNil(t, props.description)
	assert.Empty(t, *props.description)
}

func TestBuildXMPPacket_EscapesMarkup(t *testing.T) {
	note := models.Note{Content: `5 < 6 & "7" <tag>`, Version: "1.0.0"}

	packet := buildXMPPacket(note)
	assert.NotContains(t, string(packet), "<tag>")

	props := parseXMPPacket(packet)
	require.NotNil(t, props.note)
	assert.Equal(t, note.Content, *props.note)
}

// --- Splicing into an existing packet ---

const foreignPacket = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:xmp="http://ns.adobe.com/xap/1.0/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:memoryink="http://ns.memoryink.app/1.0/">
   <xmp:CreatorTool>Adobe Lightroom 6.0</xmp:CreatorTool>
   <dc:description><rdf:Alt><rdf:li xml:lang="x-default">old caption</rdf:li></rdf:Alt></dc:description>
   <memoryink:Note>old note</memoryink:Note>
   <memoryink:Encrypted>PLAINTEXT</memoryink:Encrypted>
   <memoryink:Version>1.0.0</memoryink:Version>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

func TestSpliceXMPPacket_ReplacesOwnedKeepsForeign(t *testing.T) {
	out, ok := spliceXMPPacket([]byte(foreignPacket), models.Note{Content: "new note", Version: "1.1.0"})
	require.True(t, ok)

	s := string(out)
	assert.Contains(t, s, "Adobe Lightroom 6.0")
	assert.NotContains(t, s, "old note")
	assert.NotContains(t, s, "old caption")

	// Exactly one copy of each owned property after the rewrite.
	assert.Equal(t, 1, strings.Count(s, "<memoryink:Note"))
	assert.Equal(t, 1, strings.Count(s, "<memoryink:Encrypted"))
	assert.Equal(t, 1, strings.Count(s, "<memoryink:Version"))
	assert.Equal(t, 1, strings.Count(s, "<dc:description"))

	props := parseXMPPacket(out)
	require.NotNil(t, props.note)
	assert.Equal(t, "new note", *props.note)
	require.NotNil(t, props.version)
	assert.Equal(t, "1.1.0", *props.version)
}

func TestSpliceXMPPacket_AttributeFormCleaned(t *testing.T) {
	existing := []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
<rdf:Description rdf:about="" xmlns:memoryink="http://ns.memoryink.app/1.0/" memoryink:Note="attr note" memoryink:Encrypted="PLAINTEXT">
</rdf:Description>
</rdf:RDF>
</x:xmpmeta>`)

	out, ok := spliceXMPPacket(existing, models.Note{Content: "fresh", Version: "1.1.0"})
	require.True(t, ok)
	assert.NotContains(t, string(out), "attr note")

	props := parseXMPPacket(out)
	require.NotNil(t, props.note)
	assert.Equal(t, "fresh", *props.note)
}

func TestSpliceXMPPacket_NoAnchor(t *testing.T) {
	foreign := []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"><weird>structure</weird></x:xmpmeta>`)

	_, ok := spliceXMPPacket(foreign, models.Note{Content: "note", Version: "1.0.0"})
	assert.False(t, ok)
}

// --- Lenient parsing ---

func TestParseXMPPacket_AttributeForm(t *testing.T) {
	packet := []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
<rdf:Description rdf:about="" xmlns:memoryink="http://ns.memoryink.app/1.0/" memoryink:Note="attr note" memoryink:Encrypted="ENCRYPTED" memoryink:Version="0.9.0"/>
</rdf:RDF>
</x:xmpmeta>`)

	props := parseXMPPacket(packet)

	require.NotNil(t, props.note)
	assert.Equal(t, "attr note", *props.note)
	require.NotNil(t, props.encrypted)
	assert.Equal(t, EncryptedMarker, *props.encrypted)
	require.NotNil(t, props.version)
	assert.Equal(t, "0.9.0", *props.version)
}

func TestParseXMPPacket_UnboundPrefix(t *testing.T) {
	// Some writers never declare the namespace; the decoder then leaves
	// the bare prefix in place of the URI.
	packet := []byte(`<meta><memoryink:Note>loose note</memoryink:Note></meta>`)

	props := parseXMPPacket(packet)

	require.NotNil(t, props.note)
	assert.Equal(t, "loose note", *props.note)
}

func TestParseXMPPacket_FirstOccurrenceWins(t *testing.T) {
	packet := []byte(`<meta xmlns:memoryink="http://ns.memoryink.app/1.0/">
<memoryink:Note>first</memoryink:Note>
<memoryink:Note>second</memoryink:Note>
</meta>`)

	props := parseXMPPacket(packet)

	require.NotNil(t, props.note)
	assert.Equal(t, "first", *props.note)
}

// --- Textual helpers ---

func TestRemoveXMLElement(t *testing.T) {
	t.Run("paired element", func(t *testing.T) {
		in := []byte(`<a><memoryink:Note>x</memoryink:Note><b/></a>`)
		out := removeXMLElement(in, "memoryink:Note")
		assert.Equal(t, `<a><b/></a>`, string(out))
	})

	t.Run("self-closing element", func(t *testing.T) {
		in := []byte(`<a><memoryink:Note attr="v"/><b/></a>`)
		out := removeXMLElement(in, "memoryink:Note")
		assert.Equal(t, `<a><b/></a>`, string(out))
	})

	t.Run("name boundary respected", func(t *testing.T) {
		in := []byte(`<a><memoryink:NoteBook>keep</memoryink:NoteBook><memoryink:Note>drop</memoryink:Note></a>`)
		out := removeXMLElement(in, "memoryink:Note")
		assert.Contains(t, string(out), "NoteBook")
		assert.NotContains(t, string(out), "drop")
	})
}

func TestRemoveXMLAttr(t *testing.T) {
	in := []byte(`<rdf:Description memoryink:Note="old" rdf:about="">`)
	out := removeXMLAttr(in, "memoryink:Note")
	assert.Equal(t, `<rdf:Description rdf:about="">`, string(out))
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "5 &lt; 6 &amp; more", xmlEscape("5 < 6 & more"))
}
