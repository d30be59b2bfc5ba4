package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// Bank is one decoded question bank document.
type Bank struct {
	Questions []question.Question `json:"questions"`
	Passages  []question.Passage  `json:"passages,omitempty"`
}

// LoadBankFile reads and validates a single bank document.
func LoadBankFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}
	if err := question.ValidateBankDocument(raw); err != nil {
		return nil, fmt.Errorf("validate bank %s: %w", path, err)
	}
	var bank Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", path, err)
	}
	return &bank, nil
}

// LoadBankDir loads every .json file in dir and merges them into one
// bank. Later files override earlier questions with the same id.
func LoadBankDir(dir string) (*Bank, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no bank files in %s", dir)
	}

	questionsByID := make(map[string]question.Question)
	passagesByID := make(map[string]question.Passage)
	var questionOrder, passageOrder []string
	for _, name := range names {
		bank, err := LoadBankFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for _, q := range bank.Questions {
			if _, seen := questionsByID[q.ID]; !seen {
				questionOrder = append(questionOrder, q.ID)
			}
			questionsByID[q.ID] = q
		}
		for _, p := range bank.Passages {
			if _, seen := passagesByID[p.ID]; !seen {
				passageOrder = append(passageOrder, p.ID)
			}
			passagesByID[p.ID] = p
		}
	}

	return &Bank{
		Questions: lo.Map(questionOrder, func(id string, _ int) question.Question { return questionsByID[id] }),
		Passages:  lo.Map(passageOrder, func(id string, _ int) question.Passage { return passagesByID[id] }),
	}, nil
}

// MemoryStore serves a loaded bank from memory. It implements
// question.Store and is the backend for the json engine.
type MemoryStore struct {
	bank    *Bank
	bySkill map[string][]int // indexes into bank.Questions
}

var _ question.Store = (*MemoryStore)(nil)

// NewMemoryStore indexes a bank for skill lookups.
func NewMemoryStore(bank *Bank) *MemoryStore {
	bySkill := make(map[string][]int)
	for i, q := range bank.Questions {
		for _, skillID := range q.Skills {
			bySkill[skillID] = append(bySkill[skillID], i)
		}
	}
	return &MemoryStore{bank: bank, bySkill: bySkill}
}

func (s *MemoryStore) QuestionsBySkill(_ context.Context, skillID string, difficulty int) ([]question.Question, error) {
	var out []question.Question
	for _, i := range s.bySkill[skillID] {
		q := s.bank.Questions[i]
		if difficulty == question.AnyDifficulty || q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *MemoryStore) Questions(_ context.Context, category taxonomy.Category) ([]question.Question, error) {
	if category == "" {
		return append([]question.Question{}, s.bank.Questions...), nil
	}
	return lo.Filter(s.bank.Questions, func(q question.Question, _ int) bool {
		return q.Type == category
	}), nil
}

func (s *MemoryStore) Passages(_ context.Context) ([]question.Passage, error) {
	return append([]question.Passage{}, s.bank.Passages...), nil
}
