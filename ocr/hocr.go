package ocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/gridscan/model"
)

// Word is a recognized word and its position on the page
type Word struct {
	Text string
	BBox model.Cell

	// Confidence is the engine confidence, from 0 to 100
	Confidence float64
}

// ParseHOCR returns the words of an hOCR document in document order. Words
// without a bounding box or without text are skipped; a word without a
// confidence gets 100. Documents declaring a Latin-1 charset are decoded
// first, and word texts are NFC-normalized.
func ParseHOCR(data []byte) ([]Word, error) {
	if isLatin1(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ISO-8859-1: %w", err)
		}
		data = decoded
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var words []Word
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			if w, ok := parseWord(n); ok {
				words = append(words, w)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return words, nil
}

// isLatin1 reports whether the document declares an ISO-8859-1 charset
func isLatin1(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 1024)]))
	i := strings.Index(head, "charset=")
	if i < 0 {
		return false
	}
	enc := strings.FieldsFunc(head[i+len("charset="):], func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' ' || r == '/'
	})
	if len(enc) == 0 {
		return false
	}
	switch enc[0] {
	case "iso-8859-1", "latin1", "latin-1", "iso8859-1":
		return true
	}
	return false
}

func parseWord(n *html.Node) (Word, bool) {
	props := parseTitle(attr(n, "title"))

	box, ok := props["bbox"]
	if !ok || len(box) < 4 {
		return Word{}, false
	}
	var c [4]int
	for i := range c {
		v, err := strconv.Atoi(box[i])
		if err != nil {
			return Word{}, false
		}
		c[i] = v
	}

	text := norm.NFC.String(strings.TrimSpace(textContent(n)))
	if text == "" {
		return Word{}, false
	}

	conf := 100.0
	if v, ok := props["x_wconf"]; ok && len(v) > 0 {
		if f, err := strconv.ParseFloat(v[0], 64); err == nil {
			conf = f
		}
	}
	return Word{Text: text, BBox: model.NewCell(c[0], c[1], c[2], c[3]), Confidence: conf}, true
}

// parseTitle breaks an hOCR title attribute such as
// "bbox 100 200 300 400; x_wconf 95" into its properties.
func parseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) > 0 {
			props[fields[0]] = fields[1:]
		}
	}
	return props
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
