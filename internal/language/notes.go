package language

// scriptInfo describes how a language is written for the bootstrap
// templates: the native script label and the romanization scheme the tutor
// should use ("none" disables romanization entirely).
type scriptInfo struct {
	NativeScript string
	Romanization string
}

var scripts = map[string]scriptInfo{
	"chinese":  {"汉字", "pinyin"},
	"mandarin": {"汉字", "pinyin"},
	"korean":   {"한글", "none"},
	"japanese": {"日本語", "romaji"},
	"spanish":  {"Español", "none"},
	"french":   {"Français", "none"},
	"german":   {"Deutsch", "none"},
}

// Script returns writing-system info for a canonical language name,
// falling back to a generic placeholder for unknown languages.
func Script(name string) scriptInfo {
	if s, ok := scripts[name]; ok {
		return s
	}
	return scriptInfo{NativeScript: "Native Script", Romanization: "none"}
}

var notes = map[string]string{
	"chinese": `## Chinese-Specific Considerations

- **Tones**: Pay attention to tone usage in learner's pinyin (if provided)
- **Characters vs Pinyin**: Track if learner uses characters or pinyin
- **Measure words (量词)**: Track these as grammar constructs
- **Common structures**: 是...的, 把-sentences, 被-passive, 了/过/着 aspects
- **Cold start**: Use "👋 你好 (nǐ hǎo)" - one word with emoji and pinyin`,

	"korean": `## Korean-Specific Considerations

- **Politeness levels**: Track which speech levels the learner knows (합쇼체, 해요체, 해체, etc.)
- **Particles**: Track particles (은/는, 이/가, 을/를, etc.) as grammar
- **Verb conjugation**: Track tense and politeness conjugation patterns
- **Honorifics**: Note when learner uses/should use honorific forms
- **Cold start**: Use "👋 안녕 (annyeong)" - one word with emoji and romanization`,

	"japanese": `## Japanese-Specific Considerations

- **Politeness levels**: Track です/ます vs casual forms
- **Particles**: Track particles (は, が, を, に, で, etc.) as grammar
- **Verb groups**: Note which verb conjugation patterns learner knows
- **Kanji vs Kana**: Track which kanji the learner knows
- **Cold start**: Use "👋 こんにちは (konnichiwa)" - one word with emoji and romaji`,

	"spanish": `## Spanish-Specific Considerations

- **Verb conjugation**: Track which tenses and moods learner knows
- **Ser vs Estar**: Track as separate grammar constructs
- **Subjunctive**: Introduce gradually, it's complex
- **Gender agreement**: Track as grammar construct
- **Cold start**: Use "👋 Hola" - one word with emoji`,

	"french": `## French-Specific Considerations

- **Verb conjugation**: Track which tenses and moods learner knows
- **Gender and articles**: Track as grammar constructs
- **Liaisons**: Note pronunciation patterns
- **Formal vs informal (tu/vous)**: Track which the learner uses
- **Cold start**: Use "👋 Bonjour" - one word with emoji`,

	"german": `## German-Specific Considerations

- **Cases**: Track nominative, accusative, dative, genitive separately
- **Verb position**: Track V2 rule, subordinate clause order
- **Gender and articles**: Track der/die/das patterns
- **Formal vs informal (Sie/du)**: Track which the learner uses
- **Cold start**: Use "👋 Hallo" - one word with emoji`,
}

const genericNotes = `## Language-Specific Considerations

- Research and add language-specific grammar patterns as you encounter them
- Pay attention to any unique features of this language
- Adapt greeting and teaching style to cultural norms
- Start with the simplest possible greeting and self-introduction`

// Notes returns the language-specific tutor notes block for a canonical
// language name.
func Notes(name string) string {
	if name == "mandarin" {
		name = "chinese"
	}
	if n, ok := notes[name]; ok {
		return n
	}
	return genericNotes
}
