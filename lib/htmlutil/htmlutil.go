package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText is GetText with non-printables stripped and whitespace
// runs collapsed, the form every card label is normalized to before
// parsing.
func CleanText(node *html.Node) string {
	text := removeNonPrintable(GetText(node))
	text = strings.Trim(text, " \t\n")
	return innerWhitespace.ReplaceAllString(text, " ")
}

// FirstAttr returns the first non-empty value among the given
// attribute names. Lazy-loading markup moves an image source between
// src and data-src depending on render state, so lookups need the
// fallback chain.
func FirstAttr(sel *goquery.Selection, names ...string) (string, bool) {
	for _, name := range names {
		value, ok := sel.Attr(name)
		if ok && value != "" {
			return value, true
		}
	}
	return "", false
}
