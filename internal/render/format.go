// ABOUTME: Date, count, and pagination formatting for terminal views.
// ABOUTME: Page windows show two pages either side of the current one with ellipses.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Ellipsis marks a gap in a page window.
const Ellipsis = 0

// Date formats t like "Mar 4, 2025".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// Joined formats an account creation time like "Joined March 2025".
func Joined(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "Joined " + t.Local().Format("January 2006")
}

// Relative formats t relative to now, e.g. "3 hours ago".
func Relative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Plural returns "1 comment", "2 comments", "1,024 comments".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return Count(n) + " " + plural
}

// PageWindow lists the page numbers to offer for page of total. Ellipsis
// entries stand for skipped ranges. Nil when there is a single page.
func PageWindow(page, total int) []int {
	if total <= 1 {
		return nil
	}
	start := max(1, page-2)
	end := min(total, page+2)

	var pages []int
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total {
		if end < total-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, total)
	}
	return pages
}

// Pager renders a page window such as "‹ 1 ... 4 5 [6] 7 8 ... 12 ›".
func Pager(page, total int) string {
	window := PageWindow(page, total)
	if window == nil {
		return ""
	}
	parts := make([]string, 0, len(window)+2)
	if page > 1 {
		parts = append(parts, "‹")
	}
	for _, p := range window {
		switch p {
		case Ellipsis:
			parts = append(parts, "...")
		case page:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if page < total {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}
