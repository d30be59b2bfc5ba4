package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/taxonomy"
	"github.com/nkapur/verbaprep/internal/testgen"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Generate and score single-category practice tests",
}

var practiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a practice test targeted at weak skills",
	RunE:  runPracticeNew,
}

var practiceScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a practice test and update the brain map",
	RunE:  runPracticeScore,
}

func init() {
	practiceNewCmd.Flags().String("category", "text_completion", "Question category (reading_comprehension, text_completion, sentence_equivalence)")
	practiceNewCmd.Flags().Int("count", 20, "Number of questions")
	practiceNewCmd.Flags().String("out", "practice-test.json", "Output file for the generated test")

	practiceScoreCmd.Flags().String("test", "practice-test.json", "Generated test file")
	practiceScoreCmd.Flags().String("answers", "answers.json", "Submitted answers file")

	practiceCmd.AddCommand(practiceNewCmd)
	practiceCmd.AddCommand(practiceScoreCmd)
}

func runPracticeNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	category, err := parseCategory(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	out, _ := cmd.Flags().GetString("out")
	user := resolveUser(cmd)

	qs, closeQuestions, err := openQuestions(cmd)
	if err != nil {
		return err
	}
	defer closeQuestions()

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	bm, err := loadBrainMap(ctx, s.BrainMaps(), user)
	if err != nil {
		return err
	}

	gen := testgen.New(qs, newRand(cmd))
	test, err := gen.Generate(ctx, category, count, bm)
	if err != nil {
		return fmt.Errorf("generate test: %w", err)
	}
	if len(test.Questions) < count {
		logrus.WithFields(logrus.Fields{
			"requested": count,
			"found":     len(test.Questions),
		}).Warn("question bank too small for the requested test length")
	}

	if err := writeJSONFile(out, test); err != nil {
		return err
	}
	fmt.Printf("Generated %s test %s with %d questions -> %s\n",
		taxonomy.CategoryDisplayName(category), test.TestID, len(test.Questions), out)
	return nil
}

func runPracticeScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	testPath, _ := cmd.Flags().GetString("test")
	answersPath, _ := cmd.Flags().GetString("answers")
	user := resolveUser(cmd)

	var test testgen.GeneratedTest
	if err := readJSONFile(testPath, &test); err != nil {
		return err
	}
	var answers []question.Answer
	if err := readJSONFile(answersPath, &answers); err != nil {
		return err
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	repo := s.BrainMaps()

	bm, err := loadBrainMap(ctx, repo, user)
	if err != nil {
		return err
	}

	result, updated := testgen.ScoreTest(&test, answers, bm)
	updated = brainmap.AddTestToHistory(updated, historyEntry(&test, result))
	if err := saveBrainMap(ctx, repo, updated); err != nil {
		return fmt.Errorf("save brain map: %w", err)
	}

	fmt.Printf("Score: %d/%d correct, estimated %d ±%d\n",
		result.CorrectCount, result.Total, result.EstimatedScore, result.ConfidenceInterval)
	if len(result.WeakSkills) > 0 {
		fmt.Printf("Weak skills: %v\n", result.WeakSkills)
	}
	if len(result.StrongSkills) > 0 {
		fmt.Printf("Strong skills: %v\n", result.StrongSkills)
	}
	if len(result.TrapsFallenFor) > 0 {
		fmt.Printf("Traps fallen for: %v\n", result.TrapsFallenFor)
	}

	rec := testgen.Recommend(result)
	fmt.Println(rec.Message)
	if len(rec.ReviewLessons) > 0 {
		fmt.Printf("Review lessons: %v\n", rec.ReviewLessons)
	}
	if len(rec.PracticeSkills) > 0 {
		fmt.Printf("Practice next: %v\n", rec.PracticeSkills)
	}
	return nil
}

func historyEntry(test *testgen.GeneratedTest, result *testgen.TestResult) brainmap.TestHistoryEntry {
	lo, hi := 0, 0
	for i, q := range test.Questions {
		if i == 0 || q.Difficulty < lo {
			lo = q.Difficulty
		}
		if q.Difficulty > hi {
			hi = q.Difficulty
		}
	}
	return brainmap.TestHistoryEntry{
		TestID:          result.TestID,
		Date:            result.Date,
		Category:        string(result.Category),
		Score:           fmt.Sprintf("%d/%d", result.CorrectCount, result.Total),
		EstimatedScore:  result.EstimatedScore,
		DifficultyRange: [2]int{lo, hi},
		WeakSkills:      result.WeakSkills,
		StrongSkills:    result.StrongSkills,
	}
}

func parseCategory(cmd *cobra.Command) (taxonomy.Category, error) {
	raw, _ := cmd.Flags().GetString("category")
	for _, c := range taxonomy.VerbalCategories() {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}
