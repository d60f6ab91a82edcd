package mimedb

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/xdgmime/pkg/errors"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
	"github.com/arthur-debert/xdgmime/pkg/paths"
	"github.com/beevik/etree"
)

// DefaultLanguage is assumed for elements without xml:lang
const DefaultLanguage = "en"

// Description holds the human readable data from a type's XML document.
type Description struct {
	Type            mimetype.TypeName   `json:"type"`
	Language        string              `json:"language"`
	Comment         string              `json:"comment,omitempty"`
	Acronym         string              `json:"acronym,omitempty"`
	ExpandedAcronym string              `json:"expanded_acronym,omitempty"`
	Aliases         []mimetype.TypeName `json:"aliases,omitempty"`
	Sources         []string            `json:"sources,omitempty"`
}

// Describe reads mime/<media>/<subtype>.xml under every root. For each
// localized field the highest priority document with an element in lang
// wins. Aliases are collected from all documents. The boolean is false when
// no document exists for t.
func (db *Database) Describe(t mimetype.TypeName, lang string) (*Description, bool, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	desc := &Description{Type: t, Language: lang}
	rel := filepath.Join(paths.MimeDir, t.Media(), t.Subtype()+".xml")

	for _, root := range db.roots {
		path := filepath.Join(root, rel)
		data, err := db.fs.ReadFile(path)
		if err != nil {
			continue
		}

		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, false, errors.Wrapf(err, errors.ErrDatabaseLoad, "failed to parse %s", path).
				WithDetail("type", t.String())
		}
		el := doc.Root()
		if el == nil {
			continue
		}
		desc.Sources = append(desc.Sources, path)

		fillLocalized(&desc.Comment, el, "comment", lang)
		fillLocalized(&desc.Acronym, el, "acronym", lang)
		fillLocalized(&desc.ExpandedAcronym, el, "expanded-acronym", lang)

		for _, alias := range el.SelectElements("alias") {
			name, err := mimetype.Parse(alias.SelectAttrValue("type", ""))
			if err != nil || slices.Contains(desc.Aliases, name) {
				continue
			}
			desc.Aliases = append(desc.Aliases, name)
		}
	}

	return desc, len(desc.Sources) > 0, nil
}

// fillLocalized sets *dst from the first tag child in lang unless a higher
// priority document already did.
func fillLocalized(dst *string, el *etree.Element, tag, lang string) {
	if *dst != "" {
		return
	}
	for _, child := range el.SelectElements(tag) {
		if child.SelectAttrValue("xml:lang", DefaultLanguage) == lang {
			*dst = strings.TrimSpace(child.Text())
			return
		}
	}
}
