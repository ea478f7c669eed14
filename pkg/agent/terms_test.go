package agent

import (
	"reflect"
	"testing"
)

func TestExtractAllowedTerms(t *testing.T) {
	tests := []struct {
		name     string
		ctx      string
		maxTerms int
		want     []string
	}{
		{
			name:     "empty context",
			ctx:      "",
			maxTerms: 12,
			want:     nil,
		},
		{
			// "lid" appears once and must not make the cut.
			name:     "single-occurrence terms dropped",
			ctx:      "- steel bottle with lid\n- steel bottle insulated",
			maxTerms: 12,
			want:     []string{"steel", "bottle"},
		},
		{
			name:     "frequency ranks ahead of position",
			ctx:      "- mug ceramic mug\n- ceramic mug red red",
			maxTerms: 12,
			want:     []string{"mug", "ceramic", "red"},
		},
		{
			// "premium" and "quality" are generic vocabulary.
			name:     "stopwords never become terms",
			ctx:      "- premium quality bottle\n- premium quality bottle",
			maxTerms: 12,
			want:     []string{"bottle"},
		},
		{
			name:     "cap respected",
			ctx:      "- aaa bbb ccc ddd\n- aaa bbb ccc ddd",
			maxTerms: 2,
			want:     []string{"aaa", "bbb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAllowedTerms(tt.ctx, tt.maxTerms)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractAllowedTerms() = %v, want %v", got, tt.want)
			}
		})
	}
}
