package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanonicalActionDeclarationOrder(t *testing.T) {
	lex := Default()

	tests := []struct {
		token  string
		want   string
		wantOK bool
	}{
		// Containment match: the token need not equal the surface form.
		{"打开一下", "打开", true},
		{"进入", "打开", true},
		{"退出", "关闭", true},
		// Declaration order wins, not position in the token: the search
		// group precedes the playback group in the table, so a token
		// containing both 听 and 找 resolves to the search action.
		{"听歌找歌", "搜索", true},
		// A token containing two surface forms resolves to the earlier
		// rule.
		{"打开搜索", "打开", true},
		{"天气", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := lex.CanonicalAction(tt.token)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CanonicalAction(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestContainedActions(t *testing.T) {
	lex := Default()

	got := lex.ContainedActions("打开然后找一下")
	if len(got) != 2 || got[0] != "打开" || got[1] != "搜索" {
		t.Errorf("expected [打开 搜索], got %v", got)
	}

	// Two surface forms of one action contribute it once.
	got = lex.ContainedActions("打开并进入")
	if len(got) != 1 || got[0] != "打开" {
		t.Errorf("expected [打开], got %v", got)
	}

	if got := lex.ContainedActions("天气"); len(got) != 0 {
		t.Errorf("expected no actions, got %v", got)
	}
}

func TestFirstEntityTableOrder(t *testing.T) {
	lex := Default()

	// 抖音 precedes 微信 in the table; table order decides, not position
	// in the text.
	if got := lex.FirstEntity("用微信把视频分享到抖音"); got != "抖音" {
		t.Errorf("expected table-order winner 抖音, got %q", got)
	}
	if got := lex.FirstEntity("打开计算器"); got != "" {
		t.Errorf("expected no entity, got %q", got)
	}
}

func TestStripExcluded(t *testing.T) {
	lex := Default()
	got := lex.StripExcluded("帮我找一下这首歌曲")
	for _, term := range []string{"帮我", "一下", "这首", "歌曲"} {
		if strings.Contains(got, term) {
			t.Errorf("excluded term %q survived: %q", term, got)
		}
	}
}

func TestIsFillerLead(t *testing.T) {
	lex := Default()
	if !lex.IsFillerLead('的') {
		t.Error("的 should be a filler lead")
	}
	if lex.IsFillerLead('天') {
		t.Error("天 should not be a filler lead")
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `verbs:
  - surface: 瞅
    action: 查看
  - surface: 开
    action: 打开
entities:
  - 某应用
excluded:
  - 那个
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write lexicon file: %v", err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lex.Verbs) != 2 || lex.Verbs[0].Surface != "瞅" || lex.Verbs[1].Surface != "开" {
		t.Errorf("verb order not preserved: %+v", lex.Verbs)
	}
	if got, ok := lex.CanonicalAction("瞅开"); !ok || got != "查看" {
		t.Errorf("expected first-declared rule to win, got %q", got)
	}
	if lex.Fillers == "" {
		t.Error("fillers should default when absent from the file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing lexicon file")
	}
}
