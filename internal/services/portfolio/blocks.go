package portfolio

import (
	"fmt"

	"github.com/mcoot/folio/internal/model"
)

// Kind identifies the printable style of a block
type Kind int

const (
	KindTitle Kind = iota
	KindField
	KindHeading
	KindItem
	KindSubheading
	KindText
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindField:
		return "field"
	case KindHeading:
		return "heading"
	case KindItem:
		return "item"
	case KindSubheading:
		return "subheading"
	case KindText:
		return "text"
	case KindSpacer:
		return "spacer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Block is one printable unit of a portfolio document.
// Label is only set for KindField.
type Block struct {
	Kind  Kind
	Label string
	Text  string
}

// Title returns the document title for an account
func Title(account *model.Account) string {
	return account.Username + "'s Portfolio"
}

// Assemble turns a profile and its projects into the ordered block sequence
// of the exported document. Empty profile fields are omitted and the login
// email is never printed, only the public one. The
// certifications section only appears when the list is non-empty.
func Assemble(account *model.Account, projects []*model.Project) []Block {
	blocks := []Block{{Kind: KindTitle, Text: Title(account)}}

	for _, f := range []struct{ label, value string }{
		{"Course", account.Course},
		{"Tagline", account.Tagline},
		{"Email", account.PublicEmail},
	} {
		if f.value != "" {
			blocks = append(blocks, Block{Kind: KindField, Label: f.label, Text: f.value})
		}
	}

	if len(account.Certifications) > 0 {
		blocks = append(blocks, Block{Kind: KindSpacer})
		blocks = append(blocks, Block{Kind: KindHeading, Text: "Certifications"})
		for _, c := range account.Certifications {
			blocks = append(blocks, Block{Kind: KindItem, Text: CertificationLine(c)})
		}
	}

	blocks = append(blocks, Block{Kind: KindSpacer})
	blocks = append(blocks, Block{Kind: KindHeading, Text: "Projects"})
	for _, p := range projects {
		blocks = append(blocks, Block{Kind: KindSubheading, Text: p.Title})
		if p.Description != "" {
			blocks = append(blocks, Block{Kind: KindText, Text: p.Description})
		}
	}

	return blocks
}

// CertificationLine formats one certification as a single PDF item line
func CertificationLine(c model.Certification) string {
	name := c.Name
	if name == "" {
		name = "Certification"
	}
	return fmt.Sprintf("%s — %s (%s)", name, c.Issuer, c.Date)
}
