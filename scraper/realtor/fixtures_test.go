package realtor

import (
	"fmt"
	"strings"
)

// card describes one listing card in the realtor.ca list view layout.
type card struct {
	href      string
	price     string
	address   string
	sqft      string
	noHref    bool
	noAddress bool
	noSqft    bool
}

func (c card) html() string {
	var b strings.Builder

	if c.noHref {
		b.WriteString(`<a>`)
	} else {
		fmt.Fprintf(&b, `<a href="%s">`, c.href)
	}
	b.WriteString(`<div><div class="photo"></div><div>`)

	b.WriteString(`<div><div class="tag">New</div>`)
	fmt.Fprintf(&b, `<div>%s</div>`, c.price)
	if !c.noAddress {
		fmt.Fprintf(&b, `<div>%s</div>`, c.address)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div><div>3 bd</div><div>2 ba</div><div><div><div>Square Footage</div>`)
	if !c.noSqft {
		fmt.Fprintf(&b, `<div>%s</div>`, c.sqft)
	}
	b.WriteString(`</div></div></div>`)

	b.WriteString(`</div></div></a>`)
	return b.String()
}

// resultsPage renders a results page holding cards, with a pagination
// indicator when total is not empty.
func resultsPage(total string, cards ...card) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>results</title></head><body>`)
	b.WriteString(`<div id="listInnerCon">`)
	for _, c := range cards {
		b.WriteString(`<div><div>`)
		b.WriteString(c.html())
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
	if total != "" {
		fmt.Fprintf(&b, `<div id="ListViewPagination_Bottom"><div><div><div><span>1</span><span>%s</span></div></div></div></div>`, total)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}
