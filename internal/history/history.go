package history

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Message is one reconstructed chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reader reconstructs chat history from the external CLI's own transcript
// store. The CLI keeps one project directory per working directory it was
// run in, holding JSONL conversation transcripts; this program never
// writes there.
type Reader struct {
	// projectsRoot is the CLI's projects directory,
	// typically ~/.claude/projects.
	projectsRoot string
}

// NewReader creates a Reader over the default projects root in the
// user's home directory.
func NewReader() (*Reader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Reader{projectsRoot: filepath.Join(home, ".claude", "projects")}, nil
}

// NewReaderAt creates a Reader over an explicit projects root.
func NewReaderAt(projectsRoot string) *Reader {
	return &Reader{projectsRoot: projectsRoot}
}

// encodePath converts an absolute directory path to the CLI's project
// folder name: the drive colon and every path separator become dashes.
func encodePath(abs string) string {
	abs = strings.TrimPrefix(abs, `\\?\`)
	abs = strings.ReplaceAll(abs, `:\`, "--")
	abs = strings.ReplaceAll(abs, `\`, "-")
	abs = strings.ReplaceAll(abs, "/", "-")
	return abs
}

// ProjectDir returns the transcript directory for a language directory.
func (r *Reader) ProjectDir(langDir string) (string, error) {
	abs, err := filepath.Abs(langDir)
	if err != nil {
		return "", fmt.Errorf("resolve language directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Join(r.projectsRoot, encodePath(abs)), nil
}

// Read returns the chat history of a language directory, reconstructed
// from the newest transcript. A language that has never been talked to has
// no project directory; that is empty history, not an error.
func (r *Reader) Read(langDir string) ([]Message, error) {
	projectDir, err := r.ProjectDir(langDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(projectDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("read project directory: %w", err)
	}

	latest := newestTranscript(projectDir, entries)
	if latest == "" {
		return []Message{}, nil
	}
	return parseTranscript(latest)
}

// newestTranscript picks the most recently modified .jsonl file.
func newestTranscript(dir string, entries []os.DirEntry) string {
	type candidate struct {
		path string
		mod  int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path: filepath.Join(dir, entry.Name()),
			mod:  info.ModTime().UnixNano(),
		})
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].mod > candidates[j].mod
	})
	return candidates[0].path
}

func parseTranscript(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	messages := []Message{}
	scanner := bufio.NewScanner(f)
	// Transcript lines routinely exceed bufio's default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !gjson.Valid(line) {
			slog.Warn("skipping malformed transcript line",
				"component", "history",
				"transcript", filepath.Base(path),
				"line", lineNo,
			)
			continue
		}

		entry := gjson.Parse(line)
		if text, ok := userText(entry); ok {
			messages = append(messages, Message{Role: "user", Content: text})
		}
		if text, ok := assistantText(entry); ok {
			messages = append(messages, Message{Role: "assistant", Content: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}
	return messages, nil
}

// userText extracts a learner message. Tool results are transcript
// bookkeeping, not learner turns, and are skipped.
func userText(entry gjson.Result) (string, bool) {
	if entry.Get("type").String() != "user" {
		return "", false
	}
	msg := entry.Get("message")
	if msg.Get("role").String() != "user" {
		return "", false
	}

	content := msg.Get("content")
	if content.Type == gjson.String {
		return content.String(), true
	}
	return "", false
}

// assistantText extracts the first text block of a tutor reply.
func assistantText(entry gjson.Result) (string, bool) {
	if entry.Get("type").String() != "assistant" {
		return "", false
	}
	msg := entry.Get("message")
	if msg.Get("role").String() != "assistant" {
		return "", false
	}

	var text string
	msg.Get("content").ForEach(func(_, item gjson.Result) bool {
		if item.Get("type").String() == "text" {
			text = item.Get("text").String()
			return false
		}
		return true
	})
	return text, text != ""
}
