package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/scoring"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery, score estimate, and review queue",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	user := resolveUser(cmd)

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	bm, err := loadBrainMap(ctx, s.BrainMaps(), user)
	if err != nil {
		return err
	}

	est := scoring.EstimateFromBrainMap(bm)
	fmt.Printf("User: %s\n", bm.UserID)
	fmt.Printf("Estimated verbal score: %d ±%d (%s, ~%dth percentile)\n",
		est.Score, est.ConfidenceInterval, est.Band, est.Percentile)
	fmt.Printf("Section estimates: RC %d, TC %d, SE %d\n",
		bm.EstimatedScore.RC, bm.EstimatedScore.TC, bm.EstimatedScore.SE)
	fmt.Printf("Tests taken: %d\n", len(bm.TestHistory))

	for _, category := range taxonomy.VerbalCategories() {
		fmt.Printf("\n%s\n", taxonomy.CategoryDisplayName(category))
		for _, skill := range taxonomy.ByCategory(category) {
			sm := bm.Skills[skill.ID]
			fmt.Printf("  %-10s %-32s mastery %.2f (%s, %s) %d/%d\n",
				skill.ID, skill.Name, sm.Mastery, sm.Level, sm.Trend,
				sm.Correct, sm.QuestionsSeen)
		}
	}

	if weak := brainmap.WeakSkills(bm, ""); len(weak) > 0 {
		fmt.Printf("\nWeakest skills: %v\n", firstN(weak, 5))
	}
	if review := brainmap.SkillsNeedingReview(bm); len(review) > 0 {
		fmt.Printf("Needs review: %v\n", firstN(review, 5))
	}

	if len(bm.TrapProfile) > 0 {
		fmt.Println("\nTrap record:")
		for _, trapID := range taxonomy.TrapSkillIDs() {
			trap := bm.TrapProfile[trapID]
			if trap.FallenFor+trap.Avoided == 0 {
				continue
			}
			fmt.Printf("  %-10s fell for %d, avoided %d\n", trapID, trap.FallenFor, trap.Avoided)
		}
	}
	return nil
}

func firstN(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}
	return ids[:n]
}
