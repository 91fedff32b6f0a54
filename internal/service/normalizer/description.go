package normalizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/feed-server/pkg/strutil"
	"github.com/darkkaiser/feed-server/pkg/validation"
	"golang.org/x/net/html"
)

// droppedElements 내용까지 통째로 제거하는 요소입니다.
var droppedElements = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// rawTextElements 토크나이저가 닫는 태그까지 원문 텍스트로 읽는 요소입니다.
// 자체 닫힘(<script/>)으로 써도 이후 내용은 닫는 태그가 나올 때까지 텍스트로 읽힙니다.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
}

// allowedElements 서식 있는 설명에 남겨 두는 요소입니다. 속성은 a 요소의 href만 허용합니다.
var allowedElements = map[string]bool{
	"p": true, "br": true,
	"b": true, "strong": true, "i": true, "em": true, "u": true,
	"ul": true, "ol": true, "li": true,
	"h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "span": true, "a": true,
}

// SanitizeDescription 원천 설명을 일반 텍스트와 서식 있는 HTML로 변환합니다.
// 원천 설명에 마크업이 없으면 rich는 빈 문자열입니다.
func SanitizeDescription(raw string) (plain, rich string) {
	if strings.TrimSpace(raw) == "" {
		return "", ""
	}

	plain = PlainText(raw)
	if strings.ContainsRune(raw, '<') {
		rich = SanitizeHTML(raw)
	}

	return plain, rich
}

// PlainText 모든 마크업을 제거하고 공백을 정리한 텍스트를 반환합니다.
// 인접한 요소의 텍스트가 붙지 않도록 텍스트 노드 사이에 공백을 둡니다.
func PlainText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strutil.NormalizeSpaces(raw)
	}

	doc.Find("script, style, iframe, object, embed").Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &sb)
	}

	return strutil.NormalizeSpaces(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// SanitizeHTML 허용 목록에 있는 요소만 남긴 HTML을 반환합니다.
//
// 허용되지 않은 요소는 태그만 제거하고 내용은 유지하지만, droppedElements는 내용까지 제거합니다.
// 닫히지 않은 요소는 끝에서 닫아 주고, 짝이 없는 닫는 태그는 무시합니다.
func SanitizeHTML(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))

	var (
		sb        strings.Builder
		open      []string
		skipDepth int
	)

loop:
	for {
		tt := z.Next()

		switch tt {
		case html.ErrorToken:
			// 입력 끝(io.EOF)
			break loop

		case html.TextToken:
			if skipDepth == 0 {
				sb.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name := tok.Data

			if droppedElements[name] {
				if tt == html.StartTagToken || rawTextElements[name] {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 || !allowedElements[name] {
				continue
			}

			sb.WriteString("<" + name)
			if name == "a" {
				for _, attr := range tok.Attr {
					if attr.Key == "href" && validation.IsHTTPURL(strings.TrimSpace(attr.Val)) {
						sb.WriteString(` href="` + html.EscapeString(strings.TrimSpace(attr.Val)) + `"`)
					}
				}
			}
			sb.WriteString(">")

			if name == "br" {
				continue
			}
			if tt == html.SelfClosingTagToken {
				sb.WriteString("</" + name + ">")
				continue
			}
			open = append(open, name)

		case html.EndTagToken:
			tok := z.Token()
			name := tok.Data

			if droppedElements[name] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 || !allowedElements[name] || name == "br" {
				continue
			}

			idx := -1
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				continue
			}
			for i := len(open) - 1; i >= idx; i-- {
				sb.WriteString("</" + open[i] + ">")
			}
			open = open[:idx]
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString("</" + open[i] + ">")
	}

	return strings.TrimSpace(sb.String())
}
