package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionsFile is the side-channel file correlating conversation modes to
// the external CLI's conversation identifiers. It is owned by this program;
// the agent never touches it.
const SessionsFile = "sessions.json"

// SessionRecord is one mode's conversation binding.
type SessionRecord struct {
	SessionID string `json:"session_id"`
	Updated   string `json:"updated"`
}

type sessionDoc struct {
	Modes map[string]SessionRecord `json:"modes"`
}

// LoadSessions reads the mode-session map of a language directory.
// A missing file yields an empty map.
func LoadSessions(dir string) (map[string]SessionRecord, error) {
	data, err := os.ReadFile(filepath.Join(dir, SessionsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]SessionRecord{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", SessionsFile, err)
	}

	var doc sessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", SessionsFile, err)
	}
	if doc.Modes == nil {
		doc.Modes = map[string]SessionRecord{}
	}
	return doc.Modes, nil
}

// SaveSession binds a mode to a conversation identifier, replacing the
// file with temp-file-then-rename like every other per-language write.
func SaveSession(dir, mode, sessionID string, now time.Time) error {
	modes, err := LoadSessions(dir)
	if err != nil {
		return err
	}
	modes[mode] = SessionRecord{
		SessionID: sessionID,
		Updated:   now.UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(sessionDoc{Modes: modes}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", SessionsFile, err)
	}

	tmp, err := os.CreateTemp(dir, SessionsFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", SessionsFile, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp for %s: %w", SessionsFile, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", SessionsFile, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, SessionsFile)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", SessionsFile, err)
	}
	return nil
}
