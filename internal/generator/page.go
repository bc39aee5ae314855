package generator

import (
	_ "embed"
	"os"
	"time"

	"github.com/portico-home/portico/internal/domain"
)

//go:embed templates/index.html
var defaultPage []byte

// PageConfig carries the client-side rendering hints published alongside
// the entry list.
type PageConfig struct {
	Title        string `json:"page_title"`
	ShowFooter   bool   `json:"show_footer"`
	OpenInNewTab bool   `json:"open_in_new_tab"`
	SortBy       string `json:"sort_by"`
}

// Document is the published apps.json shape. Downstream renderers depend on
// it field for field.
type Document struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Config      PageConfig        `json:"config"`
	Apps        []domain.AppEntry `json:"apps"`
}

// loadPage returns the client HTML: the template file when configured and
// readable, the embedded default otherwise.
func loadPage(templateFile string) []byte {
	if templateFile == "" {
		return defaultPage
	}
	data, err := os.ReadFile(templateFile)
	if err != nil {
		return defaultPage
	}
	return data
}
