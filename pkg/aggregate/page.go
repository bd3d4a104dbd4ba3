package aggregate

import "github.com/matzehuels/feedscope/pkg/feedback"

// DefaultPerPage is the page size of the record browser.
const DefaultPerPage = 20

// Page is one slice of a paginated record list. Number is 1-based.
type Page struct {
	Number  int
	Pages   int
	Records []feedback.Record
}

// Paginate returns page number page of records. The page is clamped into
// [1, Pages]; an empty input has one empty page.
func Paginate(records []feedback.Record, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := (len(records) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	page = max(1, min(page, pages))
	start := min((page-1)*perPage, len(records))
	end := min(start+perPage, len(records))
	return Page{Number: page, Pages: pages, Records: records[start:end]}
}
