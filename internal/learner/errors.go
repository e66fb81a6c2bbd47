package learner

import "errors"

var (
	ErrStateFileMissing = errors.New("state file missing")
	ErrWordNotFound     = errors.New("word not found")
	ErrWordExists       = errors.New("word already exists")
	ErrRuleNotFound     = errors.New("grammar rule not found")
	ErrRuleExists       = errors.New("grammar rule already exists")
)
