// Package listing parses Apache/nginx autoindex pages. The format is a
// deliberately narrow contract: every <tr> carries exactly four <td>
// cells (icon, name link, size, date) except the <th>-only header row,
// and the icon image tells the row's kind. Anything outside that
// grammar is an error, not something to tolerate.
package listing

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// ErrFormat marks a page that violates the four-column table contract.
var ErrFormat = errors.New("listing: page does not match autoindex format")

// Link is one classified row: a root-relative target path and whether
// it names a subdirectory.
type Link struct {
	Path string
	Dir  bool
}

// Stock autoindex icon filenames, matched by basename of the icon src.
const (
	iconParent = "back.gif"
	iconDir    = "folder.gif"
	iconFile   = "file.gif"
)

type cell struct {
	imgSrc string // src of the first <img> in the cell
	href   string // href of the first <a> in the cell
}

// Parse walks the body and returns the classified links in row order.
// Parent-directory rows are skipped; a row with a cell count other than
// four (or zero) or an unrecognized icon fails the whole parse.
func Parse(body []byte) ([]Link, error) {
	z := html.NewTokenizer(bytes.NewReader(body))

	var (
		links  []Link
		cells  []cell
		inRow  bool
		inCell bool
	)

	flushRow := func() error {
		defer func() { cells = nil }()
		if len(cells) == 0 {
			return nil // header row, <th> cells only
		}
		if len(cells) != 4 {
			return fmt.Errorf("%w: row has %d cells, want 4", ErrFormat, len(cells))
		}
		icon := path.Base(cells[0].imgSrc)
		switch icon {
		case iconParent:
			return nil
		case iconDir, iconFile:
		default:
			return fmt.Errorf("%w: unrecognized icon %q", ErrFormat, icon)
		}
		href := strings.TrimSpace(cells[1].href)
		if href == "" {
			return fmt.Errorf("%w: row has no link target", ErrFormat)
		}
		links = append(links, Link{Path: href, Dir: icon == iconDir})
		return nil
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF ends the document; the tokenizer never fails on
			// malformed markup, it just stops emitting tokens.
			break
		}
		t := z.Token()

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch t.Data {
			case "tr":
				// A new row implicitly terminates an unclosed one.
				if inRow {
					if err := flushRow(); err != nil {
						return nil, err
					}
				}
				inRow = true
				inCell = false
			case "td":
				if inRow {
					cells = append(cells, cell{})
					inCell = true
				}
			case "img":
				if inCell && len(cells) > 0 {
					if c := &cells[len(cells)-1]; c.imgSrc == "" {
						c.imgSrc = attr(t, "src")
					}
				}
			case "a":
				if inCell && len(cells) > 0 {
					if c := &cells[len(cells)-1]; c.href == "" {
						c.href = attr(t, "href")
					}
				}
			}
		case html.EndTagToken:
			switch t.Data {
			case "td":
				inCell = false
			case "tr":
				if inRow {
					if err := flushRow(); err != nil {
						return nil, err
					}
				}
				inRow, inCell = false, false
			}
		}
	}
	if len(cells) > 0 {
		// The document ended mid-row; a truncated page is a broken page.
		return nil, fmt.Errorf("%w: truncated row at end of page", ErrFormat)
	}
	return links, nil
}

func attr(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
