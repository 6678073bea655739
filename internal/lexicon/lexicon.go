package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// VerbRule maps a surface verb form to its canonical action. Rules are
// matched by substring containment in declaration order, so the position
// of a rule in the table is part of its meaning: a token containing two
// surface forms resolves to whichever rule comes first.
type VerbRule struct {
	Surface string `yaml:"surface"`
	Action  string `yaml:"action"`
}

// Lexicon holds the static rule tables the engine matches against. It is
// built once at startup and read-only afterwards; every engine call
// receives it explicitly.
type Lexicon struct {
	Verbs    []VerbRule `yaml:"verbs"`
	Entities []string   `yaml:"entities"`
	Excluded []string   `yaml:"excluded"`
	Fillers  string     `yaml:"fillers"`
}

// Default returns the built-in rule tables.
func Default() *Lexicon {
	return &Lexicon{
		Verbs: []VerbRule{
			{"打开", "打开"},
			{"开启", "打开"},
			{"启动", "打开"},
			{"进入", "打开"},
			{"运行", "打开"},
			{"搜索", "搜索"},
			{"查找", "搜索"},
			{"寻找", "搜索"},
			{"搜", "搜索"},
			{"找", "搜索"},
			{"播放", "播放"},
			{"收听", "播放"},
			{"听", "播放"},
			{"暂停", "暂停"},
			{"停止", "暂停"},
			{"关闭", "关闭"},
			{"退出", "关闭"},
			{"查看", "查看"},
			{"看", "查看"},
			{"发送", "发送"},
			{"分享", "发送"},
			{"下载", "下载"},
			{"收藏", "收藏"},
			{"切换", "切换"},
			{"拨打", "拨打"},
			{"打电话", "拨打"},
			{"调节", "调节"},
			{"调大", "调节"},
			{"调小", "调节"},
			{"设置", "设置"},
			{"录制", "录制"},
		},
		Entities: []string{
			"全民K歌",
			"QQ音乐",
			"网易云音乐",
			"酷狗音乐",
			"酷我音乐",
			"喜马拉雅",
			"抖音",
			"快手",
			"微信",
			"微博",
			"哔哩哔哩",
			"爱奇艺",
			"腾讯视频",
			"优酷",
			"淘宝",
			"支付宝",
			"百度地图",
			"高德地图",
		},
		Excluded: []string{
			"帮我", "请", "我要", "我想",
			"一下", "这首", "那首",
			"歌曲", "音乐", "视频", "内容",
		},
		Fillers: "的了一在是请帮我",
	}
}

// Load reads a lexicon file. Entry order in the file is preserved, which
// is why the tables are sequences rather than maps.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	lex := &Lexicon{}
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if lex.Fillers == "" {
		lex.Fillers = Default().Fillers
	}
	return lex, nil
}

// CanonicalAction resolves a single token against the verb table: the
// first rule whose surface form the token contains wins.
func (l *Lexicon) CanonicalAction(token string) (string, bool) {
	for _, r := range l.Verbs {
		if strings.Contains(token, r.Surface) {
			return r.Action, true
		}
	}
	return "", false
}

// ContainedActions collects the canonical action of every verb rule whose
// surface form occurs in text, in table order, without repeats.
func (l *Lexicon) ContainedActions(text string) []string {
	var actions []string
	seen := make(map[string]bool)
	for _, r := range l.Verbs {
		if !strings.Contains(text, r.Surface) {
			continue
		}
		if !seen[r.Action] {
			seen[r.Action] = true
			actions = append(actions, r.Action)
		}
	}
	return actions
}

// FirstEntity returns the first known entity, in table order, that occurs
// in text. At most one entity wins per text.
func (l *Lexicon) FirstEntity(text string) string {
	for _, e := range l.Entities {
		if strings.Contains(text, e) {
			return e
		}
	}
	return ""
}

// StripExcluded removes every excluded content term from text.
func (l *Lexicon) StripExcluded(text string) string {
	for _, term := range l.Excluded {
		text = strings.ReplaceAll(text, term, "")
	}
	return text
}

// IsFillerLead reports whether r is one of the grammatical filler
// characters that disqualify a residual token when it starts with one.
func (l *Lexicon) IsFillerLead(r rune) bool {
	return strings.ContainsRune(l.Fillers, r)
}
