package squiggle

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateMetadataDeterministic(t *testing.T) {
	seed := MustParseSeed("1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef")
	a := GenerateMetadata(seed)
	b := GenerateMetadata(seed)
	if a != b {
		t.Error("GenerateMetadata should be deterministic")
	}
	if GenerateMetadata(Seed{}) == a {
		t.Error("different seeds should produce different metadata")
	}
}

func TestGenerateMetadataRoundTrip(t *testing.T) {
	seed := MustParseSeed("1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef")
	uri := GenerateMetadata(seed)

	if !strings.HasPrefix(uri, MetadataPrefix) {
		t.Fatalf("metadata should start with %q", MetadataPrefix)
	}

	raw, err := Base64Decode(strings.TrimPrefix(uri, MetadataPrefix))
	if err != nil {
		t.Fatalf("outer base64: %v", err)
	}
	var record map[string]string
	if err := json.Unmarshal(raw, &record); err != nil {
		t.Fatalf("outer layer is not JSON: %v", err)
	}
	if len(record) != 3 {
		t.Errorf("record has %d fields, want 3: %v", len(record), record)
	}
	if record["name"] != MetadataName || record["description"] != MetadataDescription {
		t.Errorf("unexpected name/description: %v", record)
	}

	image, ok := strings.CutPrefix(record["image"], ImagePrefix)
	if !ok {
		t.Fatalf("image should start with %q", ImagePrefix)
	}
	svg, err := Base64Decode(image)
	if err != nil {
		t.Fatalf("image base64: %v", err)
	}
	if string(svg) != GenerateSVG(seed) {
		t.Error("embedded image should equal GenerateSVG(seed)")
	}
	if s := parseSVG(t, string(svg)); s.root != "svg" {
		t.Errorf("embedded document root = %q, want svg", s.root)
	}
}

func TestPackageMetadataLayout(t *testing.T) {
	uri := PackageMetadata([]byte("<svg/>"))
	raw, err := Base64Decode(strings.TrimPrefix(uri, MetadataPrefix))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Stylus Squiggle","description":"A squiggle generated by Stylus","image":"data:image/svg+xml;base64,PHN2Zy8+"}`
	if string(raw) != want {
		t.Errorf("record = %s\nwant     %s", raw, want)
	}
}

func TestDecodeMetadata(t *testing.T) {
	seed := MustParseSeed(strings.Repeat("5a", 32))
	md, svg, err := DecodeMetadata(GenerateMetadata(seed))
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if md.Name != MetadataName {
		t.Errorf("Name = %q", md.Name)
	}
	if string(svg) != GenerateSVG(seed) {
		t.Error("decoded SVG mismatch")
	}

	bad := []string{
		"",
		"data:text/plain;base64,AAAA",
		MetadataPrefix + "!!!",
		MetadataPrefix + Base64Encode([]byte("not json")),
		MetadataPrefix + Base64Encode([]byte(`{"image":"http://example.com"}`)),
	}
	for _, uri := range bad {
		if _, _, err := DecodeMetadata(uri); err == nil {
			t.Errorf("DecodeMetadata(%q) should fail", uri)
		}
	}
}
