package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/mocktest"
	"github.com/nkapur/verbaprep/internal/question"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Generate and score two-section adaptive mock exams",
}

var mockNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a mock exam with section 1 populated",
	RunE:  runMockNew,
}

var mockSection2Cmd = &cobra.Command{
	Use:   "section2",
	Short: "Generate section 2 adapted to the section-1 result",
	RunE:  runMockSection2,
}

var mockScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a completed mock exam and update the brain map",
	RunE:  runMockScore,
}

func init() {
	mockNewCmd.Flags().String("out", "mock-test.json", "Output file for the generated exam")

	mockSection2Cmd.Flags().String("test", "mock-test.json", "Mock exam file")
	mockSection2Cmd.Flags().String("answers", "section1-answers.json", "Section-1 answers file")

	mockScoreCmd.Flags().String("test", "mock-test.json", "Mock exam file")
	mockScoreCmd.Flags().String("s1", "section1-answers.json", "Section-1 answers file")
	mockScoreCmd.Flags().String("s2", "section2-answers.json", "Section-2 answers file")

	mockCmd.AddCommand(mockNewCmd)
	mockCmd.AddCommand(mockSection2Cmd)
	mockCmd.AddCommand(mockScoreCmd)
}

func runMockNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	engine := mocktest.New(qs, newRand(cmd))
	mt, err := engine.Generate(ctx, bm)
	if err != nil {
		return fmt.Errorf("generate mock exam: %w", err)
	}

	if err := writeJSONFile(out, mt); err != nil {
		return err
	}
	fmt.Printf("Generated mock exam %s, section 1 has %d questions -> %s\n",
		mt.TestID, len(mt.Sections[0].Questions), out)
	fmt.Println("Answer section 1, then run: verbaprep mock section2")
	return nil
}

func runMockSection2(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	testPath, _ := cmd.Flags().GetString("test")
	answersPath, _ := cmd.Flags().GetString("answers")

	var mt mocktest.MockTest
	if err := readJSONFile(testPath, &mt); err != nil {
		return err
	}
	var answers []question.Answer
	if err := readJSONFile(answersPath, &answers); err != nil {
		return err
	}

	qs, closeQuestions, err := openQuestions(cmd)
	if err != nil {
		return err
	}
	defer closeQuestions()

	engine := mocktest.New(qs, newRand(cmd))
	updated, err := engine.GenerateSection2(ctx, &mt, answers)
	if err != nil {
		return fmt.Errorf("generate section 2: %w", err)
	}

	if err := writeJSONFile(testPath, updated); err != nil {
		return err
	}
	fmt.Printf("Section 2 generated at %s tier with %d questions -> %s\n",
		updated.Sections[1].DifficultyTier, len(updated.Sections[1].Questions), testPath)
	return nil
}

func runMockScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	testPath, _ := cmd.Flags().GetString("test")
	s1Path, _ := cmd.Flags().GetString("s1")
	s2Path, _ := cmd.Flags().GetString("s2")
	user := resolveUser(cmd)

	var mt mocktest.MockTest
	if err := readJSONFile(testPath, &mt); err != nil {
		return err
	}
	var s1Answers, s2Answers []question.Answer
	if err := readJSONFile(s1Path, &s1Answers); err != nil {
		return err
	}
	if err := readJSONFile(s2Path, &s2Answers); err != nil {
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

	result, updated := mocktest.Score(&mt, s1Answers, s2Answers, bm)
	updated = brainmap.AddTestToHistory(updated, brainmap.TestHistoryEntry{
		TestID:         result.TestID,
		Date:           result.Date,
		Category:       "mock",
		Score:          fmt.Sprintf("%d/%d", result.TotalCorrect, result.TotalQuestions),
		EstimatedScore: result.ScoreEstimate.Score,
		WeakSkills:     result.WeakSkills,
		StrongSkills:   result.StrongSkills,
	})
	if err := saveBrainMap(ctx, repo, updated); err != nil {
		return fmt.Errorf("save brain map: %w", err)
	}

	for _, section := range result.Sections {
		fmt.Printf("Section %d (%s): %d/%d\n",
			section.SectionNumber, section.DifficultyTier, section.Correct, section.Total)
	}
	fmt.Printf("Estimated score: %d ±%d (%s, ~%dth percentile)\n",
		result.ScoreEstimate.Score, result.ScoreEstimate.ConfidenceInterval,
		result.ScoreEstimate.Band, result.ScoreEstimate.Percentile)
	if len(result.WeakSkills) > 0 {
		fmt.Printf("Weak skills: %v\n", result.WeakSkills)
	}
	if len(result.TrapsFallenFor) > 0 {
		fmt.Printf("Traps fallen for: %v\n", result.TrapsFallenFor)
	}
	return nil
}
