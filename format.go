package structdiff

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var valuePrinter = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatPrettyString is a convenice wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(changes Changes, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one line per change with nested
// changes indented below their container. if colorTTY is true it will add
// red "-" for removals
// green "+" for additions
// blue "~" for changed values
func FormatPretty(w io.Writer, changes Changes, colorTTY bool) error {
	return formatPretty(w, changes, 0, newPalette(colorTTY))
}

func formatPretty(w io.Writer, changes Changes, indent int, p palette) error {
	for _, c := range changes {
		line := fmt.Sprintf("%s %s%s: %s", c.Op(), c.Path(), label(c), describe(c))
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", indent), p.paint(c.Op(), line)); err != nil {
			return err
		}
		if cmp, ok := c.(Compound); ok {
			if err := formatPretty(w, cmp.Children(), indent+1, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// label names the element or entry a change belongs to
func label(c Change) string {
	switch ch := c.(type) {
	case IndexedChange:
		return "[" + strconv.Itoa(ch.Index()) + "]"
	case KeyedChange:
		return "[" + formatKey(ch.Key()) + "]"
	}
	return ""
}

func describe(c Change) string {
	switch c.Op() {
	case DTInsert:
		return formatValue(c.Right())
	case DTDelete:
		return formatValue(c.Left())
	case DTUpdate:
		return formatValue(c.Left()) + " -> " + formatValue(c.Right())
	}
	if cmp, ok := c.(Compound); ok {
		n := len(cmp.Children())
		if n == 1 {
			return "1 change"
		}
		return strconv.Itoa(n) + " changes"
	}
	return ""
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		if isNil(v) {
			return "null"
		}
		return x.String()
	}
	if isNil(v) {
		return "null"
	}
	return valuePrinter.Sprintf("%v", v)
}

type palette map[Operation]*color.Color

func newPalette(colorTTY bool) palette {
	if !colorTTY {
		return nil
	}
	p := palette{
		DTContext: color.New(color.FgWhite), // netural
		DTInsert:  color.New(color.FgGreen),
		DTDelete:  color.New(color.FgRed),
		DTUpdate:  color.New(color.FgBlue),
	}
	for _, c := range p {
		c.EnableColor()
	}
	return p
}

func (p palette) paint(op Operation, s string) string {
	if c, ok := p[op]; ok {
		return c.Sprint(s)
	}
	return s
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, colorTTY bool) string {
	if ds == nil {
		return ""
	}
	p := newPalette(colorTTY)
	buf := &bytes.Buffer{}

	change := ds.NodeChange()
	elsOp := DTInsert
	sign := "+"
	if change < 0 {
		elsOp = DTDelete
		sign = ""
	} else if change == 0 {
		elsOp = DTContext
		sign = ""
	}
	buf.WriteString(p.paint(elsOp, sign+humanize.Comma(int64(change))))
	buf.WriteString(" " + p.paint(DTContext, plural(change, "element")+"."))

	buf.WriteString(" " + p.paint(DTInsert, count(ds.Inserts, "insert")))
	buf.WriteString(" " + p.paint(DTDelete, count(ds.Deletes, "delete")))
	buf.WriteString(" " + p.paint(DTUpdate, count(ds.Updates, "update")))
	buf.WriteRune('\n')

	return buf.String()
}

func count(n int, word string) string {
	return humanize.Comma(int64(n)) + " " + plural(n, word) + "."
}

func plural(n int, word string) string {
	if n == 1 || n == -1 {
		return word
	}
	return word + "s"
}
