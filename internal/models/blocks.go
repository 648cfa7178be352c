package models

import "encoding/json"

// Component discriminator values used by the content store's dynamic
// zone. The set is closed here but open on the store side; anything
// else decodes to an UnknownBlock.
const (
	ComponentRichText = "shared.rich-text"
	ComponentQuote    = "shared.quote"
	ComponentMedia    = "shared.media"
	ComponentSlider   = "shared.slider"
)

// Block is one unit of an article's dynamic content composition.
// Concrete types: RichTextBlock, QuoteBlock, MediaBlock, SliderBlock
// and UnknownBlock as the forward-compatible fallback.
type Block interface {
	// Component returns the raw discriminator string for this block.
	Component() string
}

// BlockList decodes a dynamic zone while preserving document order.
// Decoding never fails on an unrecognized or malformed entry; such
// entries become UnknownBlock values so the document stays renderable.
type BlockList []Block

func (l *BlockList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	blocks := make(BlockList, 0, len(raws))
	for _, raw := range raws {
		blocks = append(blocks, decodeBlock(raw))
	}
	*l = blocks
	return nil
}

func decodeBlock(raw json.RawMessage) Block {
	var head struct {
		Component string `json:"__component"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return UnknownBlock{}
	}

	switch head.Component {
	case ComponentRichText:
		var b RichTextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			break
		}
		return b
	case ComponentQuote:
		var b QuoteBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			break
		}
		return b
	case ComponentMedia:
		var b MediaBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			break
		}
		return b
	case ComponentSlider:
		var b SliderBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			break
		}
		return b
	}
	return UnknownBlock{Kind: head.Component}
}

// RichTextBlock carries the article's prose, either as pre-rendered
// HTML or as a structured node tree depending on the store's editor.
type RichTextBlock struct {
	ID   int          `json:"id"`
	Body RichTextBody `json:"body"`
}

func (RichTextBlock) Component() string { return ComponentRichText }

// QuoteBlock is a block quotation with an optional attribution
type QuoteBlock struct {
	ID     int    `json:"id"`
	Body   string `json:"body"`
	Author string `json:"author,omitempty"`
}

func (QuoteBlock) Component() string { return ComponentQuote }

// MediaBlock is a single image
type MediaBlock struct {
	ID   int    `json:"id"`
	File *Media `json:"file"`
}

func (MediaBlock) Component() string { return ComponentMedia }

// SliderBlock is an ordered image carousel
type SliderBlock struct {
	ID    int     `json:"id"`
	Files []Media `json:"files"`
}

func (SliderBlock) Component() string { return ComponentSlider }

// UnknownBlock preserves a block whose discriminator this version of
// the app does not recognize. Kind holds the raw discriminator.
type UnknownBlock struct {
	Kind string
}

func (b UnknownBlock) Component() string { return b.Kind }

// RichTextBody is the two-case body of a rich-text block: the legacy
// editor stores a single HTML string, the blocks editor a node tree.
// The shape is resolved once at decode time.
type RichTextBody struct {
	HTML  string
	Nodes []RichTextNode
}

// IsHTML reports whether the body is pre-rendered markup
func (b RichTextBody) IsHTML() bool { return b.HTML != "" }

// IsEmpty reports whether the body carries no content at all
func (b RichTextBody) IsEmpty() bool { return b.HTML == "" && len(b.Nodes) == 0 }

func (b *RichTextBody) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.HTML = s
		return nil
	}

	var nodes []RichTextNode
	if err := json.Unmarshal(data, &nodes); err == nil {
		b.Nodes = nodes
		return nil
	}

	// Unexpected shape: keep the block, render nothing for it
	b.HTML = ""
	b.Nodes = nil
	return nil
}

// RichTextNode is one top-level node of the structured editor output:
// paragraph, heading, list, quote or code. Lists carry their items as
// children with nested text fragments.
type RichTextNode struct {
	Type     string         `json:"type"`
	Level    int            `json:"level,omitempty"`
	Format   string         `json:"format,omitempty"`
	Language string         `json:"language,omitempty"`
	Children []RichTextNode `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}
