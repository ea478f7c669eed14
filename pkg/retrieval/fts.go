package retrieval

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// FTSFallback is the offline keyword-search collaborator: a local SQLite
// FTS5 table of ad titles, used when the vector store cannot answer.
type FTSFallback struct {
	Path   string
	logger *log.Logger
}

func NewFTSFallback(path string, logger *log.Logger) *FTSFallback {
	return &FTSFallback{
		Path:   path,
		logger: logger,
	}
}

// Retrieve runs an OR-joined FTS match over the query tokens and renders the
// surviving titles as a single [Category: unknown] block. Like the primary
// path it never returns an error; problems land in the trace note.
func (f *FTSFallback) Retrieve(ctx context.Context, query string, topK int) (string, *Trace) {
	if _, err := os.Stat(f.Path); err != nil {
		return "", &Trace{
			Provider: "none",
			TopK:     topK,
			Note:     "No vector store and no local FTS DB available",
		}
	}

	toks := queryTokens(query)
	if len(toks) > 12 {
		toks = toks[:12]
	}
	if len(toks) == 0 {
		return "", &Trace{
			Provider: "local_fts",
			TopK:     topK,
			Index:    f.Path,
			Note:     "Query had no usable tokens",
		}
	}

	db, err := sql.Open("sqlite", f.Path)
	if err != nil {
		return "", &Trace{
			Provider: "local_fts",
			TopK:     topK,
			Index:    f.Path,
			Note:     "Failed to open local FTS DB: " + err.Error(),
		}
	}
	defer db.Close()

	ftsQuery := strings.Join(toks, " OR ")
	fetchK := topK * 20
	if fetchK < 50 {
		fetchK = 50
	}

	rows, err := db.QueryContext(ctx,
		"SELECT ad_text FROM ads_fts WHERE ads_fts MATCH ? LIMIT ?",
		ftsQuery, fetchK,
	)
	if err != nil {
		return "", &Trace{
			Provider: "local_fts",
			TopK:     topK,
			Index:    f.Path,
			Note:     "FTS query failed: " + err.Error(),
		}
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var ads []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ads = append(ads, text)
		if len(ads) >= topK {
			break
		}
	}
	if err := rows.Err(); err != nil {
		f.logger.Printf("[WARN] FTS row iteration: %v", err)
	}

	var ctxBlock string
	var categories []string
	if len(ads) > 0 {
		var b strings.Builder
		b.WriteString("[Category: unknown]")
		for _, a := range ads {
			b.WriteString("\n- ")
			b.WriteString(a)
		}
		ctxBlock = b.String()
		categories = []string{"unknown"}
	}

	return ctxBlock, &Trace{
		Provider:   "local_fts",
		TopK:       topK,
		Index:      f.Path,
		Matches:    len(ads),
		Categories: categories,
		AdsUsed:    len(ads),
		Note:       "Used local SQLite FTS fallback",
	}
}
