// Package catalog holds the static kana learning catalog. The catalog is
// fixed at build time; learner progress against it lives in the store.
package catalog

import "fmt"

// Script identifies a kana syllabary.
type Script string

// Supported scripts. ScriptAll is a filter value, not a catalog script.
const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
	ScriptAll      Script = "all"
)

// IsValid reports whether the script is a recognized filter value.
func (s Script) IsValid() bool {
	switch s {
	case ScriptHiragana, ScriptKatakana, ScriptAll:
		return true
	default:
		return false
	}
}

// Entry is one kana character in the catalog.
type Entry struct {
	ID     string `json:"id"`
	Char   string `json:"char"`
	Romaji string `json:"romaji"`
	Script Script `json:"script"`
	Row    string `json:"row"`
}

// entries lists the basic gojūon for both syllabaries. Entry IDs are stable
// and are the card IDs referenced by schedules and persisted progress.
var entries = buildEntries()

// gojuon holds the shared row layout; hiragana and katakana characters are
// zipped against the same romaji per row.
var gojuon = []struct {
	row      string
	romaji   []string
	hiragana []string
	katakana []string
}{
	{"a", []string{"a", "i", "u", "e", "o"}, []string{"あ", "い", "う", "え", "お"}, []string{"ア", "イ", "ウ", "エ", "オ"}},
	{"ka", []string{"ka", "ki", "ku", "ke", "ko"}, []string{"か", "き", "く", "け", "こ"}, []string{"カ", "キ", "ク", "ケ", "コ"}},
	{"sa", []string{"sa", "shi", "su", "se", "so"}, []string{"さ", "し", "す", "せ", "そ"}, []string{"サ", "シ", "ス", "セ", "ソ"}},
	{"ta", []string{"ta", "chi", "tsu", "te", "to"}, []string{"た", "ち", "つ", "て", "と"}, []string{"タ", "チ", "ツ", "テ", "ト"}},
	{"na", []string{"na", "ni", "nu", "ne", "no"}, []string{"な", "に", "ぬ", "ね", "の"}, []string{"ナ", "ニ", "ヌ", "ネ", "ノ"}},
	{"ha", []string{"ha", "hi", "fu", "he", "ho"}, []string{"は", "ひ", "ふ", "へ", "ほ"}, []string{"ハ", "ヒ", "フ", "ヘ", "ホ"}},
	{"ma", []string{"ma", "mi", "mu", "me", "mo"}, []string{"ま", "み", "む", "め", "も"}, []string{"マ", "ミ", "ム", "メ", "モ"}},
	{"ya", []string{"ya", "yu", "yo"}, []string{"や", "ゆ", "よ"}, []string{"ヤ", "ユ", "ヨ"}},
	{"ra", []string{"ra", "ri", "ru", "re", "ro"}, []string{"ら", "り", "る", "れ", "ろ"}, []string{"ラ", "リ", "ル", "レ", "ロ"}},
	{"wa", []string{"wa", "wo", "n"}, []string{"わ", "を", "ん"}, []string{"ワ", "ヲ", "ン"}},
}

func buildEntries() []Entry {
	var out []Entry
	for _, row := range gojuon {
		for i, romaji := range row.romaji {
			out = append(out, Entry{
				ID:     fmt.Sprintf("%s-%s", ScriptHiragana, romaji),
				Char:   row.hiragana[i],
				Romaji: romaji,
				Script: ScriptHiragana,
				Row:    row.row,
			})
		}
	}
	for _, row := range gojuon {
		for i, romaji := range row.romaji {
			out = append(out, Entry{
				ID:     fmt.Sprintf("%s-%s", ScriptKatakana, romaji),
				Char:   row.katakana[i],
				Romaji: romaji,
				Script: ScriptKatakana,
				Row:    row.row,
			})
		}
	}
	return out
}

// Entries returns all catalog entries. The returned slice is a copy; callers
// may reorder it freely.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ByScript returns the entries for the given script filter. ScriptAll
// returns the full catalog.
func ByScript(script Script) []Entry {
	if script == ScriptAll {
		return Entries()
	}
	var out []Entry
	for _, entry := range entries {
		if entry.Script == script {
			out = append(out, entry)
		}
	}
	return out
}

// ByID looks up a single entry by its card ID.
func ByID(id string) (Entry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}
