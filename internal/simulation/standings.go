package simulation

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/okian/elo/internal/domain/rating"
)

// buildStandings ranks entities by rating desc, then id asc.
func buildStandings(engine *rating.Engine[rating.Entity], entities []rating.Entity) []Standing {
	out := make([]Standing, len(entities))
	for i, e := range entities {
		r := engine.RecordOf(e)
		out[i] = Standing{
			ID:         idOf(e),
			Rating:     r.Rating,
			Strength:   strengthOf(e),
			MatchCount: r.MatchCount,
			LastDelta:  r.LastDelta,
		}
	}

	slices.SortFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	assignRanksWithTies(out)
	return out
}

// assignRanksWithTies gives equal ratings the same rank; the next distinct
// rating takes the following rank (dense ranking).
func assignRanksWithTies(s []Standing) {
	rank := 0
	for i := range s {
		if i == 0 || s[i].Rating != s[i-1].Rating {
			rank++
		}
		s[i].Rank = rank
	}
}

// WriteStandings prints the league tables of res to w.
func WriteStandings(w io.Writer, res *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range res.Leagues {
		fmt.Fprintf(tw, "%s\t(wins %d, ties %d, losses %d)\n", l.Name, l.Wins, l.Ties, l.Losses)
		fmt.Fprintln(tw, "RANK\tID\tRATING\tSTRENGTH\tMATCHES\tLAST DELTA")
		for _, s := range l.Standings {
			fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.1f\t%d\t%+.2f\n", s.Rank, s.ID, s.Rating, s.Strength, s.MatchCount, s.LastDelta)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
