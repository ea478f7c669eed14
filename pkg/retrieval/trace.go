package retrieval

// Trace records how one retrieval call was answered. It is attached to the
// pipeline execution trace and never mutated afterwards.
type Trace struct {
	Provider   string   `json:"provider"`
	TopK       int      `json:"top_k"`
	Namespace  string   `json:"namespace"`
	Index      string   `json:"index"`
	Matches    int      `json:"matches"`
	Categories []string `json:"categories"`
	AdsUsed    int      `json:"ads_used"`
	Note       string   `json:"note"`
}
