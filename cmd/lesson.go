package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Track completed skill lessons",
}

var lessonCompleteCmd = &cobra.Command{
	Use:   "complete <skill-id>",
	Short: "Mark a skill lesson as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runLessonComplete,
}

func init() {
	lessonCompleteCmd.Flags().Int("quick-check", 0, "Quick-check score for the lesson")
	lessonCmd.AddCommand(lessonCompleteCmd)
}

func runLessonComplete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	skillID := args[0]
	quickCheck, _ := cmd.Flags().GetInt("quick-check")
	user := resolveUser(cmd)

	skill, err := taxonomy.GetSkill(skillID)
	if err != nil {
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
	updated := brainmap.MarkLessonComplete(bm, skillID, quickCheck)
	if err := saveBrainMap(ctx, repo, updated); err != nil {
		return fmt.Errorf("save brain map: %w", err)
	}

	fmt.Printf("Lesson for %s (%s) marked complete\n", skill.Name, skillID)
	return nil
}
