package domain

import (
	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/pkg"
)

// MutationScore returns killed/total, or 1 when there is nothing to kill.
func MutationScore(killed, total int) float64 {
	if total == 0 {
		return 1.0
	}

	return float64(killed) / float64(total)
}

// Summarize aggregates the session entries of a campaign over mutants
// catalog entries.
func Summarize(id string, mutants int, entries pkg.FileSpill[m.CampaignEntry]) (m.CampaignSummary, error) {
	summary := m.CampaignSummary{ID: id, Mutants: mutants}

	err := entries.Range(func(_ uint64, entry m.CampaignEntry) error {
		summary.Sessions++

		switch {
		case entry.Err != "":
			summary.Failed++
		case entry.Result.FinalState == m.StateDone:
			summary.Done++
		case entry.Result.FinalState == m.StateAborted:
			summary.Aborted++
		}

		if entry.Result.Equivalence != nil {
			summary.ClaimedEquivalent++
		}

		for _, killed := range entry.Killed {
			if killed.ViaSweep {
				summary.SweepKills++
			} else {
				summary.DirectKills++
			}
		}

		for _, msg := range entry.Result.Conversation {
			if msg.Usage == nil {
				continue
			}

			summary.PromptTokens += msg.Usage.PromptTokens
			summary.CompletionTokens += msg.Usage.CompletionTokens
		}

		return nil
	})
	if err != nil {
		return m.CampaignSummary{}, err
	}

	summary.Killed = summary.DirectKills + summary.SweepKills
	summary.Alive = mutants - summary.Killed
	summary.Score = MutationScore(summary.Killed, mutants)

	return summary, nil
}
