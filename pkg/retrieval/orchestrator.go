package retrieval

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"adwise-be/internal/repository/contract"
	"adwise-be/pkg/embedding"
)

// Orchestrator answers retrieval requests against the pgvector corpus and
// degrades to the offline FTS fallback when the primary path is unavailable.
// It never returns an error to the caller; failures surface in the trace note.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	repo              contract.AdExampleRepository
	fallback          *FTSFallback
	config            Config
	logger            *log.Logger
}

// Config encapsulates retrieval parameters
type Config struct {
	TopK              int
	MaxAdsPerCategory int
	GlobalAdsBudget   int
	MaxCtxChars       int
	Namespace         string
	Index             string
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		TopK:              5,
		MaxAdsPerCategory: 25,
		GlobalAdsBudget:   50,
		MaxCtxChars:       7000,
		Namespace:         "public",
		Index:             "ad_examples",
	}
}

// NewOrchestrator creates a new retrieval orchestrator. repo may be nil when
// no database is configured; every call then uses the fallback.
func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	repo contract.AdExampleRepository,
	fallback *FTSFallback,
	config Config,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		repo:              repo,
		fallback:          fallback,
		config:            config,
		logger:            logger,
	}
}

var queryTokenRe = regexp.MustCompile(`[a-z0-9]+`)

// Retrieve returns an inspiration context block for the query, grouped under
// [Category: ...] headers with "- "-prefixed candidate lines, plus a trace.
func (o *Orchestrator) Retrieve(ctx context.Context, query, categoryFilter string) (string, *Trace) {
	if o.repo == nil || o.embeddingProvider == nil {
		return o.fallbackRetrieve(ctx, query, "No vector store configured; used offline fallback")
	}

	ctxBlock, trace, err := o.vectorRetrieve(ctx, query, categoryFilter)
	if err != nil {
		o.logger.Printf("[WARN] Vector retrieval failed, using fallback: %v", err)
		return o.fallbackRetrieve(ctx, query,
			fmt.Sprintf("Vector retrieval failed; fallback used. Reason: %v", err))
	}
	return ctxBlock, trace
}

func (o *Orchestrator) vectorRetrieve(ctx context.Context, query, categoryFilter string) (string, *Trace, error) {
	embeddingRes, err := o.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return "", nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	vec := embeddingRes.Embedding.Values

	// Fetch more rows than the budget needs; keyword filtering and
	// deduplication thin them out.
	fetchLimit := o.config.TopK * o.config.MaxAdsPerCategory

	note := "no_filter"
	rows, err := o.repo.SearchSimilarWithScore(ctx, vec, fetchLimit, categoryFilter)
	if err != nil {
		return "", nil, err
	}
	if categoryFilter != "" {
		note = "filter:category"
		if len(rows) == 0 {
			rows, err = o.repo.SearchSimilarWithScore(ctx, vec, fetchLimit, "")
			if err != nil {
				return "", nil, err
			}
			note = fmt.Sprintf("Category filter '%s' returned no matches; fell back to unfiltered retrieval", categoryFilter)
		}
	}

	kept := keywordFilter(rows, query)
	ctxBlock, categories, adsUsed := o.buildContext(kept)

	trace := &Trace{
		Provider:   "pgvector",
		TopK:       o.config.TopK,
		Namespace:  o.config.Namespace,
		Index:      o.config.Index,
		Matches:    len(rows),
		Categories: categories,
		AdsUsed:    adsUsed,
		Note:       note,
	}
	return ctxBlock, trace, nil
}

func (o *Orchestrator) fallbackRetrieve(ctx context.Context, query, note string) (string, *Trace) {
	if o.fallback == nil {
		return "", &Trace{
			Provider: "none",
			TopK:     o.config.TopK,
			Note:     "No vector store and no local FTS DB available",
		}
	}
	ctxBlock, trace := o.fallback.Retrieve(ctx, query, o.config.TopK)
	if note != "" && trace.Note != "" {
		trace.Note = note + "; " + trace.Note
	} else if note != "" {
		trace.Note = note
	}
	return ctxBlock, trace
}

// keywordFilter keeps rows sharing at least one significant query token.
// When filtering would leave too few rows, the unfiltered set is kept, since
// a thin context is worse than a loose one.
func keywordFilter(rows []*contract.ScoredAdExample, query string) []*contract.ScoredAdExample {
	if len(rows) == 0 {
		return nil
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return rows
	}

	var kept []*contract.ScoredAdExample
	for _, r := range rows {
		title := strings.ToLower(r.Title)
		for _, tok := range tokens {
			if strings.Contains(title, tok) {
				kept = append(kept, r)
				break
			}
		}
	}

	minKeep := 5
	if len(rows) < minKeep {
		minKeep = len(rows)
	}
	if len(kept) < minKeep {
		return rows
	}
	return kept
}

// buildContext groups rows into [Category: ...] blocks, deduplicating titles
// case-insensitively and enforcing the per-category and global budgets.
func (o *Orchestrator) buildContext(rows []*contract.ScoredAdExample) (string, []string, int) {
	perCategory := make(map[string][]string)
	perCategorySeen := make(map[string]map[string]struct{})
	var categoryOrder []string
	total := 0

	for _, r := range rows {
		if total >= o.config.GlobalAdsBudget {
			break
		}

		cat := r.Category
		if cat == "" {
			cat = "unknown"
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}

		seen, ok := perCategorySeen[cat]
		if !ok {
			seen = make(map[string]struct{})
			perCategorySeen[cat] = seen
			categoryOrder = append(categoryOrder, cat)
		}

		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		if len(perCategory[cat]) >= o.config.MaxAdsPerCategory {
			continue
		}

		seen[key] = struct{}{}
		perCategory[cat] = append(perCategory[cat], title)
		total++
	}

	var blocks []string
	for _, cat := range categoryOrder {
		ads := perCategory[cat]
		if len(ads) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString("[Category: ")
		b.WriteString(cat)
		b.WriteString("]")
		for _, a := range ads {
			b.WriteString("\n- ")
			b.WriteString(a)
		}
		blocks = append(blocks, b.String())
	}

	ctxBlock := strings.Join(blocks, "\n\n")
	if len(ctxBlock) > o.config.MaxCtxChars {
		ctxBlock = ctxBlock[:o.config.MaxCtxChars]
	}

	categories := make([]string, len(categoryOrder))
	copy(categories, categoryOrder)
	sort.Strings(categories)

	return ctxBlock, categories, total
}

func queryTokens(query string) []string {
	var out []string
	for _, tok := range queryTokenRe.FindAllString(strings.ToLower(query), -1) {
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}
