package model

import "github.com/m-kurosawa/ahasync/pkg/domain/types"

// PropertyType enumerates the target-store property kinds the engine
// reads and writes. The fixed schemas use no other kinds.
type PropertyType string

const (
	PropTitle    PropertyType = "title"
	PropRichText PropertyType = "rich_text"
	PropSelect   PropertyType = "select"
	PropDate     PropertyType = "date"
	PropURL      PropertyType = "url"
	PropRelation PropertyType = "relation"
)

// Property is a normalized target-store property value. Text carries
// the value for every non-relation kind (title/rich_text plain text,
// select label, date start, URL); Relation carries linked page ids.
// An empty Text or Relation means the property is blank; whether a
// blank value is written out or omitted is decided by the field
// policy, not here.
type Property struct {
	Type     PropertyType
	Text     string
	Relation []types.PageID
}

// Properties maps target-store field names to values
type Properties map[string]Property

// Page is a target-store record: an opaque page id plus the property
// values the engine cares about.
type Page struct {
	ID         types.PageID
	Properties Properties
}

// Text returns the text value of the named property, or "" when the
// property is absent or blank.
func (p *Page) Text(name string) string {
	return p.Properties[name].Text
}

// FirstRelation returns the id of the first page linked by the named
// relation property, or "" when the relation is absent or empty.
func (p *Page) FirstRelation(name string) types.PageID {
	rel := p.Properties[name].Relation
	if len(rel) == 0 {
		return ""
	}
	return rel[0]
}

// Title builds a title property
func Title(text string) Property {
	return Property{Type: PropTitle, Text: text}
}

// RichText builds a rich_text property
func RichText(text string) Property {
	return Property{Type: PropRichText, Text: text}
}

// Select builds a select property
func Select(label string) Property {
	return Property{Type: PropSelect, Text: label}
}

// Date builds a date property from a normalized "YYYY-MM-DD" string
func Date(date string) Property {
	return Property{Type: PropDate, Text: date}
}

// URL builds a url property
func URL(url string) Property {
	return Property{Type: PropURL, Text: url}
}

// Relation builds a relation property linking the given page ids
func Relation(ids ...types.PageID) Property {
	return Property{Type: PropRelation, Relation: ids}
}
