package notion

import (
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
)

// Wire representation of one page

type pageWire struct {
	ID         string                  `json:"id"`
	Properties map[string]propertyWire `json:"properties"`
}

type propertyWire struct {
	Type     string         `json:"type"`
	Title    []textWire     `json:"title"`
	RichText []textWire     `json:"rich_text"`
	Select   *selectWire    `json:"select"`
	Date     *dateWire      `json:"date"`
	URL      *string        `json:"url"`
	Relation []relationWire `json:"relation"`
}

type textWire struct {
	PlainText string `json:"plain_text"`
}

type selectWire struct {
	Name string `json:"name"`
}

type dateWire struct {
	Start string `json:"start"`
}

type relationWire struct {
	ID string `json:"id"`
}

// decodePage converts wire properties into the engine's normalized
// shape: plain text for every scalar kind, page ids for relations.
// Property kinds outside the fixed schemas are dropped.
func decodePage(wire pageWire) *model.Page {
	props := make(model.Properties, len(wire.Properties))

	for name, p := range wire.Properties {
		switch p.Type {
		case "title":
			props[name] = model.Title(joinText(p.Title))
		case "rich_text":
			props[name] = model.RichText(joinText(p.RichText))
		case "select":
			label := ""
			if p.Select != nil {
				label = p.Select.Name
			}
			props[name] = model.Select(label)
		case "date":
			start := ""
			if p.Date != nil {
				start = p.Date.Start
			}
			props[name] = model.Date(start)
		case "url":
			u := ""
			if p.URL != nil {
				u = *p.URL
			}
			props[name] = model.URL(u)
		case "relation":
			ids := make([]types.PageID, 0, len(p.Relation))
			for _, ref := range p.Relation {
				ids = append(ids, types.PageID(ref.ID))
			}
			props[name] = model.Relation(ids...)
		}
	}

	return &model.Page{
		ID:         types.PageID(wire.ID),
		Properties: props,
	}
}

func joinText(fragments []textWire) string {
	text := ""
	for _, f := range fragments {
		text += f.PlainText
	}
	return text
}

// encodeProperties converts engine properties into request payload
// maps. Blank values encode as the API's explicit clearing form
// (empty fragment list, null select/date/url, empty relation list);
// whether a blank field appears here at all was already decided by
// the payload builder's empty-value policy.
func encodeProperties(props model.Properties) map[string]any {
	encoded := make(map[string]any, len(props))
	for name, p := range props {
		encoded[name] = encodeProperty(p)
	}
	return encoded
}

func encodeProperty(p model.Property) any {
	switch p.Type {
	case model.PropTitle:
		return map[string]any{"title": textFragments(p.Text)}
	case model.PropRichText:
		return map[string]any{"rich_text": textFragments(p.Text)}
	case model.PropSelect:
		if p.Text == "" {
			return map[string]any{"select": nil}
		}
		return map[string]any{"select": map[string]any{"name": p.Text}}
	case model.PropDate:
		if p.Text == "" {
			return map[string]any{"date": nil}
		}
		return map[string]any{"date": map[string]any{"start": p.Text}}
	case model.PropURL:
		if p.Text == "" {
			return map[string]any{"url": nil}
		}
		return map[string]any{"url": p.Text}
	case model.PropRelation:
		refs := make([]map[string]string, 0, len(p.Relation))
		for _, id := range p.Relation {
			refs = append(refs, map[string]string{"id": string(id)})
		}
		return map[string]any{"relation": refs}
	default:
		return map[string]any{}
	}
}

func textFragments(text string) []map[string]any {
	if text == "" {
		return []map[string]any{}
	}
	return []map[string]any{
		{"text": map[string]any{"content": text}},
	}
}
