package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/featdup/featdup/internal/store"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCorpusFile(t, `records:
  - labels: [应用控制, 打开应用]
    text: 打开全民K歌
    variants:
      - 进入全民K歌
  - text: 查天气
`)

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	want := "应用控制 打开应用 打开全民K歌 进入全民K歌"
	if records[0].RawText != want {
		t.Errorf("expected raw text %q, got %q", want, records[0].RawText)
	}
	if records[0].IntentText != "" {
		t.Error("intent text must never come from an import file")
	}
	if records[1].RawText != "查天气" {
		t.Errorf("expected raw text %q, got %q", "查天气", records[1].RawText)
	}
}

func TestLoadFileRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty entry",
			content: "records:\n  - variants: []\n",
		},
		{
			name:    "too many labels",
			content: "records:\n  - labels: [a, b, c, d]\n    text: x\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCorpusFile(t, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImport(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	path := writeCorpusFile(t, `records:
  - labels: [音乐]
    text: 播放周杰伦的歌
  - labels: [音乐]
    text: 暂停播放
`)

	n, err := NewLoader(st).Import(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	count, _ := st.Count()
	if count != 2 {
		t.Errorf("expected 2 stored, got %d", count)
	}
}
