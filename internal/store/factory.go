package store

import (
	"fmt"

	"github.com/nkapur/verbaprep/internal/question"
)

// Engine names a storage backend.
type Engine string

const (
	EngineJSON   Engine = "json"
	EngineSQLite Engine = "sqlite"
)

// OpenQuestionStore opens the question store for an engine. The json
// engine loads the bank directory into memory; sqlite expects an
// imported database at dsn.
func OpenQuestionStore(engine Engine, bankDir, dsn string) (question.Store, func() error, error) {
	switch engine {
	case EngineJSON:
		bank, err := LoadBankDir(bankDir)
		if err != nil {
			return nil, nil, err
		}
		return NewMemoryStore(bank), func() error { return nil }, nil
	case EngineSQLite:
		s, err := Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return s.Questions(), s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store engine %q", engine)
	}
}
