package classifier

import (
	"strings"
	"testing"
)

func TestClassifier_ExactMatchWinsOverHint(t *testing.T) {
	cls := NewClassifier(nil)
	hints := []string{"", "image/jpeg", "audio/mpeg", "application/zip", "garbage"}

	for _, rule := range DefaultRules() {
		for _, ext := range rule.Extensions {
			for _, hint := range hints {
				if got := cls.Classify(ext, hint); got != rule.Category {
					t.Errorf("Classify(%q, %q) = %s, want %s", ext, hint, got, rule.Category)
				}
			}
		}
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	cls := NewClassifier(nil)

	testCases := []struct {
		ext  string
		want Category
	}{
		{".PDF", Documents},
		{".JpEg", Pictures},
		{".ZIP", Compressed},
		{".MKV", Videos},
		{".Flac", Music},
	}

	for _, tc := range testCases {
		if got := cls.Classify(tc.ext, ""); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.ext, got, tc.want)
		}
	}
}

func TestClassifier_HintFallback(t *testing.T) {
	cls := NewClassifier(nil)

	testCases := []struct {
		name string
		ext  string
		hint string
		want Category
	}{
		{"image", "", "image/jpeg", Pictures},
		{"zip", "", "application/zip", Compressed},
		{"rar", "", "application/x-rar-compressed", Compressed},
		{"pdf without extension", "", "application/pdf", Others},
		{"audio", ".xyz", "audio/ogg", Music},
		{"video", ".xyz", "video/webm", Videos},
		{"text with params", ".xyz", "text/plain; charset=utf-8", Documents},
		{"upper case hint", "", "IMAGE/PNG", Pictures},
		{"unknown primary type", ".xyz", "chemical/x-xyz", Others},
		{"no hint", ".xyz", "", Others},
		{"nothing at all", "", "", Others},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cls.Classify(tc.ext, tc.hint); got != tc.want {
				t.Errorf("Classify(%q, %q) = %s, want %s", tc.ext, tc.hint, got, tc.want)
			}
		})
	}
}

func TestClassifier_ClassifyName(t *testing.T) {
	cls := NewClassifier(nil)

	testCases := []struct {
		name string
		want Category
	}{
		{"report.docx", Documents},
		{"photo.png", Pictures},
		{"archive.zip", Compressed},
		{"video.mp4", Videos},
		{"song.mp3", Music},
		{"mystery.xyz", Others},
		{"README", Others},
		{"backup.tar.gz", Compressed},
	}

	for _, tc := range testCases {
		if got := cls.ClassifyName(tc.name, ""); got != tc.want {
			t.Errorf("ClassifyName(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestNewTable_RejectsDuplicateExtension(t *testing.T) {
	_, err := NewTable([]Rule{
		{Category: Documents, Extensions: []string{".txt"}},
		{Category: Pictures, Extensions: []string{"TXT"}},
	})
	if err == nil {
		t.Fatal("Expected error for duplicated extension")
	}
	if !strings.Contains(err.Error(), ".txt") {
		t.Errorf("Expected error to mention .txt, got %v", err)
	}
}

func TestNewTable_RejectsInvalidRules(t *testing.T) {
	testCases := []struct {
		name  string
		rules []Rule
	}{
		{"empty category", []Rule{{Category: "", Extensions: []string{".a"}}}},
		{"others with extensions", []Rule{{Category: Others, Extensions: []string{".a"}}}},
		{"blank extension", []Rule{{Category: Music, Extensions: []string{"  "}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.rules); err == nil {
				t.Error("Expected NewTable() to fail")
			}
		})
	}
}

func TestTable_NormalizesExtensions(t *testing.T) {
	table, err := NewTable([]Rule{{Category: Music, Extensions: []string{"OGG", ".Opus"}}})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	for _, ext := range []string{".ogg", ".OGG", ".opus"} {
		if c, ok := table.Lookup(ext); !ok || c != Music {
			t.Errorf("Lookup(%q) = %s, %v, want Music", ext, c, ok)
		}
	}

	if _, ok := table.Lookup(""); ok {
		t.Error("Empty extension should never match")
	}

	rules := table.Rules()
	rules[0].Extensions[0] = ".changed"
	if _, ok := table.Lookup(".ogg"); !ok {
		t.Error("Rules() should return a copy")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("pictures"); !ok || c != Pictures {
		t.Errorf("ParseCategory(pictures) = %s, %v", c, ok)
	}
	if _, ok := ParseCategory("Downloads"); ok {
		t.Error("Downloads is not a category")
	}
}
