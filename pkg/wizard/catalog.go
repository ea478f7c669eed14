package wizard

import "strings"

// MenuAction is one of the three things the wizard can produce.
type MenuAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// Action ids
const (
	ActionFullAd       = "full_ad"
	ActionHeadlineOnly = "headline_only"
	ActionKeywords5    = "keywords_5"
)

// MenuActions is the fixed action menu shown after the greeting.
var MenuActions = []MenuAction{
	{ID: ActionFullAd, Label: "✍️  Create Full Ad", Desc: "Headline + 5 bullets + description + keywords + publishing tips"},
	{ID: ActionHeadlineOnly, Label: "🏷️  Create Headline Only", Desc: "One high-converting headline line"},
	{ID: ActionKeywords5, Label: "🔑  Get 5 Must-Use Keywords", Desc: "Exactly 5 keywords/phrases to include in the headline"},
}

// Subcategory is a second-level catalog entry.
type Subcategory struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	FilterID string `json:"-"`
}

// Category is a top-level catalog entry. FilterID is the value passed to the
// retriever as the category filter.
type Category struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	FilterID      string        `json:"-"`
	Subcategories []Subcategory `json:"-"`
}

// CategoryTree is the fixed product catalog the wizard walks.
var CategoryTree = []Category{
	{ID: "electronics", Label: "💻  Electronics & Computers", FilterID: "electronics",
		Subcategories: []Subcategory{
			{ID: "electronics", Label: "Electronics (General)", FilterID: "electronics"},
			{ID: "computers", Label: "Computers", FilterID: "computers"},
		}},
	{ID: "home_kitchen", Label: "🏠  Home & Kitchen", FilterID: "home-kitchen"},
	{ID: "sports_outdoors", Label: "⚽  Sports & Outdoors", FilterID: "sports-outdoors"},
	{ID: "beauty_health", Label: "💄  Beauty & Health", FilterID: "health-household",
		Subcategories: []Subcategory{
			{ID: "beauty", Label: "Beauty", FilterID: "beauty"},
			{ID: "health-household", Label: "Health & Household", FilterID: "health-household"},
		}},
	{ID: "automotive", Label: "🚗  Automotive", FilterID: "automotive"},
	{ID: "baby", Label: "🍼  Baby", FilterID: "baby"},
	{ID: "pets", Label: "🐾  Pets", FilterID: "pets"},
	{ID: "luggage", Label: "🧳  Luggage & Travel", FilterID: "luggage"},
	{ID: "arts_crafts", Label: "🎨  Arts & Crafts", FilterID: "arts_crafts"},
	{ID: "industrial", Label: "🏭  Industrial & Scientific", FilterID: "industrial-scientific"},
}

func findCategory(catID string) *Category {
	for i := range CategoryTree {
		if CategoryTree[i].ID == catID {
			return &CategoryTree[i]
		}
	}
	return nil
}

// hasSubcategories reports whether a category needs the sub-category step.
// A single sub-option is treated as no choice at all.
func hasSubcategories(catID string) bool {
	if c := findCategory(catID); c != nil {
		return len(c.Subcategories) > 1
	}
	return false
}

// filterID resolves the retrieval filter for a category/sub-category pair.
func filterID(catID, subID string) string {
	if subID != "" {
		for _, c := range CategoryTree {
			for _, s := range c.Subcategories {
				if s.ID == subID {
					return s.FilterID
				}
			}
		}
	}
	if c := findCategory(catID); c != nil {
		return c.FilterID
	}
	return catID
}

// categoryLabel renders the human-readable category breadcrumb, without the
// emoji prefix of the catalog label.
func categoryLabel(catID, subID string) string {
	c := findCategory(catID)
	if c == nil {
		return catID
	}
	label := labelText(c.Label)
	if subID != "" {
		for _, s := range c.Subcategories {
			if s.ID == subID {
				return label + " > " + s.Label
			}
		}
	}
	return label
}

// labelText strips the emoji prefix separated by a double space.
func labelText(label string) string {
	if idx := strings.Index(label, "  "); idx >= 0 {
		return label[idx+2:]
	}
	return label
}
