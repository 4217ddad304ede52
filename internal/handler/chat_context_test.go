package handler

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/twaasoulElm3refa/editor-tool/internal/model"
)

func TestTruncateField(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		limit     int
		truncated bool
	}{
		{name: "over the limit", length: 700, limit: 600, truncated: true},
		{name: "under the limit", length: 500, limit: 600, truncated: false},
		{name: "exactly the limit", length: 600, limit: 600, truncated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("م", tt.length)
			got := truncateField(input, tt.limit)

			if tt.truncated {
				assert.Equal(t, tt.limit+1, len([]rune(got)))
				if !strings.HasSuffix(got, "…") {
					t.Errorf("missing ellipsis marker on truncation")
				}
			} else {
				assert.Equal(t, input, got)
			}
		})
	}
}

func TestBuildChatContext(t *testing.T) {
	values := []model.VisibleValue{{
		OrganizationName: "شركة الأفق",
		AboutPress:       strings.Repeat("ن", 700),
		Article:          strings.Repeat("خ", 900),
	}}

	block := buildChatContext(values)

	if !strings.Contains(block, "شركة الأفق") {
		t.Errorf("context missing organization name")
	}
	if !strings.Contains(block, strings.Repeat("ن", 600)+"…") {
		t.Errorf("about_press not truncated to 600 with marker")
	}
	if strings.Contains(block, strings.Repeat("ن", 601)) {
		t.Errorf("about_press kept more than 600 characters")
	}
	if !strings.Contains(block, strings.Repeat("خ", 800)+"…") {
		t.Errorf("article not truncated to 800 with marker")
	}
}

func TestBuildChatContext_Empty(t *testing.T) {
	assert.Equal(t, "", buildChatContext(nil))
	assert.Equal(t, "", buildChatContext([]model.VisibleValue{{}}))
}

func TestShouldSearchNews(t *testing.T) {
	tests := []struct {
		name    string
		message string
		auto    bool
		want    bool
	}{
		{name: "auto flag forces search", message: "مرحبا", auto: true, want: true},
		{name: "explicit english command", message: "search: oil prices", want: true},
		{name: "explicit arabic command", message: "بحث: أسعار النفط", want: true},
		{name: "freshness keyword english", message: "what is the latest on the merger?", want: true},
		{name: "freshness keyword arabic", message: "ما هي آخر الأخبار عن الشركة؟", want: true},
		{name: "plain editing request", message: "حسّن صياغة هذه الفقرة", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldSearchNews(tt.message, tt.auto))
		})
	}
}

func TestDeriveNewsQuery(t *testing.T) {
	values := []model.VisibleValue{{OrganizationName: "شركة الأفق"}}

	tests := []struct {
		name    string
		message string
		values  []model.VisibleValue
		want    string
	}{
		{
			name:    "explicit command argument wins",
			message: "بحث: أسعار النفط اليوم",
			values:  values,
			want:    "أسعار النفط اليوم",
		},
		{
			name:    "freshness sentence stripped of filler",
			message: "ما هي مستجدات الاندماج؟",
			want:    "مستجدات الاندماج",
		},
		{
			name:    "falls back to organization name",
			message: "صِغ خبرًا جديدًا",
			values:  values,
			want:    "شركة الأفق",
		},
		{
			name:    "falls back to the raw message",
			message: "صِغ خبرًا جديدًا",
			want:    "صِغ خبرًا جديدًا",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveNewsQuery(tt.message, tt.values))
		})
	}
}

func TestDeriveNewsQuery_Caps(t *testing.T) {
	long := strings.Repeat("س", 200)
	got := deriveNewsQuery("بحث: "+long, nil)
	assert.Equal(t, 120, len([]rune(got)))
}
