package agent

// Conversation modes. Each mode is a separate conversation with the
// external CLI, correlated through the per-language session map.
const (
	ModeChat    = "chat"
	ModeReview  = "review"
	ModeGrammar = "grammar"
)

// Modes lists the accepted mode names.
var Modes = []string{ModeChat, ModeReview, ModeGrammar}

// modePrefixes are prepended to the first message of a mode's conversation
// so the tutor knows which footing to start on. Resumed conversations get
// the learner's text untouched.
var modePrefixes = map[string]string{
	ModeChat: "[MODE: CHAT] Free immersion conversation. Follow CLAUDE.md.\n\n",
	ModeReview: "[MODE: REVIEW] Run a recall session: quiz the learner on words in " +
		"vocabulary.json whose next_review is due, one at a time, and record each " +
		"outcome with mark-word-recalled. Follow CLAUDE.md.\n\n",
	ModeGrammar: "[MODE: GRAMMAR] Focused grammar practice: build exchanges around " +
		"rules in grammar.json with the fewest stars, and record outcomes with " +
		"mark-grammar-used. Follow CLAUDE.md.\n\n",
}

// ValidMode reports whether name is a known conversation mode.
func ValidMode(name string) bool {
	_, ok := modePrefixes[name]
	return ok
}

// FirstMessagePrompt prepends the mode prefix for a conversation opener.
func FirstMessagePrompt(mode, text string) string {
	return modePrefixes[mode] + text
}

// trackerPrompt instructs a background agent run to fold one learner
// message into the state documents and produce no reply. The tracker runs
// in the .tracker subdirectory so its conversation history stays out of
// the responder's; learner state sits one level up.
const trackerPrompt = `[TRACKER TASK - UPDATE FILES ONLY, NO RESPONSE]

Process this learner message and update the vocabulary and grammar state.

Learner said: %s

Instructions:
1. Read ../vocabulary.json and ../grammar.json
2. For each word or particle the learner used:
   - If NEW: immersio add-word --dir .. <word> <meaning>
   - If TRACKED: judge the recall quality (0-5) and run
     immersio mark-word-recalled --dir .. <word> <quality>
3. For each grammar construct the learner attempted:
   - If NEW: immersio add-grammar --dir .. <rule> <description> --level <A1-C2>
   - If TRACKED: immersio mark-grammar-used --dir .. <rule> <correct|incorrect>
4. Never edit the JSON files directly; the scripts keep the records consistent.
5. Output NOTHING - your only job is updating state.

Check for existing records by the word/rule field before adding; the
scripts refuse duplicates.`
