package stretchy

import (
	"strconv"

	"github.com/agiangrant/stretchy/retained"
	"github.com/agiangrant/stretchy/tw"
)

// DefaultPagerSeparator sits between the page number and the page count.
const DefaultPagerSeparator = " / "

// PagerProps configures the page-count indicator.
type PagerProps struct {
	Separator string                        // Defaults to DefaultPagerSeparator
	Color     tw.Color                      // Pill background
	Format    func(index, count int) string // Overrides the default "1 / 3" text
}

// Text returns the indicator text for a zero-based index.
func (p PagerProps) Text(index, count int) string {
	if p.Format != nil {
		return p.Format(index, count)
	}
	sep := p.Separator
	if sep == "" {
		sep = DefaultPagerSeparator
	}
	return strconv.Itoa(index+1) + sep + strconv.Itoa(count)
}

func newPagerNode(props PagerProps, count int) *retained.Node {
	return retained.Text(props.Text(0, count)).
		SetBackgroundColor(uint32(props.Color))
}
