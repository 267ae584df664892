package canonical

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/seqvault/seqvault/internal/domain"
)

// Codec canonicalizes and pretty-prints task sequence definitions.
// Canonical form is what change detection hashes: two definitions that
// differ only in whitespace or attribute order canonicalize identically.
type Codec struct{}

func (Codec) Canonicalize(ctx context.Context, format domain.DefinitionFormat, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch domain.NormalizeDefinitionFormat(format) {
	case domain.FormatJSON:
		return canonicalizeJSON(input)
	default:
		return canonicalizeXML(input)
	}
}

func (Codec) Pretty(ctx context.Context, format domain.DefinitionFormat, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch domain.NormalizeDefinitionFormat(format) {
	case domain.FormatJSON:
		return prettyJSON(input)
	default:
		return prettyXML(input)
	}
}

func canonicalizeJSON(input []byte) ([]byte, error) {
	value := jsontext.Value(append([]byte(nil), input...))
	if err := value.Canonicalize(); err != nil {
		return nil, fmt.Errorf("canonicalize json: %w", err)
	}
	return []byte(value), nil
}

func prettyJSON(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, input, "", "  "); err != nil {
		return nil, fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func canonicalizeXML(input []byte) ([]byte, error) {
	doc, err := parseXML(input)
	if err != nil {
		return nil, err
	}

	trimInsignificantText(&doc.Element)
	sortAttrs(&doc.Element)

	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("canonicalize xml: %w", err)
	}
	return out, nil
}

func prettyXML(input []byte) ([]byte, error) {
	doc, err := parseXML(input)
	if err != nil {
		return nil, err
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("format xml: %w", err)
	}
	return out, nil
}

func parseXML(input []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(input); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return doc, nil
}

func trimInsignificantText(el *etree.Element) {
	var remove []etree.Token
	for _, child := range el.Child {
		switch tok := child.(type) {
		case *etree.CharData:
			trimmed := strings.TrimSpace(tok.Data)
			if trimmed == "" {
				remove = append(remove, tok)
				continue
			}
			tok.Data = trimmed
		case *etree.Element:
			trimInsignificantText(tok)
		}
	}
	for _, tok := range remove {
		el.RemoveChild(tok)
	}
}

func sortAttrs(el *etree.Element) {
	el.SortAttrs()
	for _, child := range el.ChildElements() {
		sortAttrs(child)
	}
}
