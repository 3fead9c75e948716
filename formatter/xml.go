package formatter

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// BuildXML serializes a leaderboard response to XML
func (rb *responseBuilder) BuildXML(res *LeaderboardResponse) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	b.WriteString("<Leaderboard capacity=\"")
	b.WriteString(strconv.Itoa(res.Capacity))
	b.WriteString("\">")
	if res.ResponseTimestamp != "" {
		b.WriteString("<ResponseTimestamp>")
		b.WriteString(xmlEscape(res.ResponseTimestamp))
		b.WriteString("</ResponseTimestamp>")
	}
	if res.Selected != "" {
		b.WriteString("<Selected>")
		b.WriteString(xmlEscape(res.Selected))
		b.WriteString("</Selected>")
	}
	for _, e := range res.Entries {
		writeEntryXML(&b, e)
	}
	b.WriteString("</Leaderboard>")
	return []byte(b.String())
}

func writeEntryXML(b *strings.Builder, e RankedEntry) {
	b.WriteString("<Entry rank=\"")
	b.WriteString(strconv.Itoa(e.Rank))
	b.WriteString("\" id=\"")
	b.WriteString(xmlEscape(e.ID))
	b.WriteString("\">")
	b.WriteString("<Name>")
	b.WriteString(xmlEscape(e.Name))
	b.WriteString("</Name>")
	b.WriteString("<Score>")
	b.WriteString(strconv.Itoa(e.Score))
	b.WriteString("</Score>")
	if e.Symbol != "" {
		b.WriteString("<Symbol>")
		b.WriteString(xmlEscape(e.Symbol))
		b.WriteString("</Symbol>")
	}
	b.WriteString("</Entry>")
}

// xmlEscape escapes markup characters and replaces characters XML 1.0
// cannot carry with U+FFFD.
func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
