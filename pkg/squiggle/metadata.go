package squiggle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed metadata fields.
const (
	MetadataName        = "Stylus Squiggle"
	MetadataDescription = "A squiggle generated by Stylus"
)

// Data URI prefixes.
const (
	ImagePrefix    = "data:image/svg+xml;base64,"
	MetadataPrefix = "data:application/json;base64,"
)

// Metadata is the decoded form of a metadata document.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// GenerateMetadata returns the complete data URI for seed: a base64 JSON
// document whose image field is itself a base64 SVG data URI.
func GenerateMetadata(seed Seed) string {
	return PackageMetadata(RenderSVG(DeriveParams(seed)))
}

// PackageMetadata wraps an already rendered SVG document.
//
// The JSON is assembled by hand so field order and spacing stay fixed;
// the only interpolated value is base64 and needs no escaping.
func PackageMetadata(svg []byte) string {
	record := `{"name":"` + MetadataName +
		`","description":"` + MetadataDescription +
		`","image":"` + ImagePrefix + Base64Encode(svg) + `"}`
	return MetadataPrefix + Base64Encode([]byte(record))
}

// DecodeMetadata reverses [GenerateMetadata], returning the decoded record
// and the embedded SVG document.
func DecodeMetadata(uri string) (Metadata, []byte, error) {
	var md Metadata

	encoded, ok := strings.CutPrefix(uri, MetadataPrefix)
	if !ok {
		return md, nil, fmt.Errorf("metadata missing %q prefix", MetadataPrefix)
	}
	raw, err := Base64Decode(encoded)
	if err != nil {
		return md, nil, fmt.Errorf("decode metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return md, nil, fmt.Errorf("parse metadata: %w", err)
	}

	image, ok := strings.CutPrefix(md.Image, ImagePrefix)
	if !ok {
		return md, nil, fmt.Errorf("image missing %q prefix", ImagePrefix)
	}
	svg, err := Base64Decode(image)
	if err != nil {
		return md, nil, fmt.Errorf("decode image: %w", err)
	}
	return md, svg, nil
}
