package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/klondike/autoplay"
	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
	"github.com/luca-patrignani/klondike/ledger"
)

func box() *pterm.BoxPrinter {
	return pterm.DefaultBox.WithHorizontalPadding(2).WithTopPadding(0).WithBottomPadding(0)
}

func getScorePanel(standard, vegas int, seconds int, timed bool) pterm.Panel {
	info := pterm.Sprintf("Score: %d\nVegas: $%d", standard, vegas)
	if timed {
		info += pterm.Sprintf("\nTime: %ds", seconds)
	}
	return pterm.Panel{Data: box().WithTitle(pterm.LightYellow("|SCORE|")).WithTitleTopCenter().Sprint(info)}
}

func getFoundationPanel(g *klondike.Game) pterm.Panel {
	tops := make([]string, 0, klondike.NumFoundations)
	for i := 1; i <= klondike.NumFoundations; i++ {
		f := g.Foundation(i)
		if len(f) == 0 {
			tops = append(tops, "[---]")
			continue
		}
		tops = append(tops, f[len(f)-1].Styled())
	}
	return pterm.Panel{Data: box().WithTitle(pterm.LightGreen("|FOUNDATIONS|")).WithTitleTopCenter().Sprint(strings.Join(tops, "  "))}
}

func getDeckPanel(g *klondike.Game) pterm.Panel {
	return pterm.Panel{Data: box().WithTitle(pterm.LightCyan("|DECK|")).WithTitleTopCenter().Sprint(deckLine(g))}
}

// deckLine shows the playable waste card, the sizes of both piles and the pass.
func deckLine(g *klondike.Game) string {
	var sb strings.Builder
	if top, ok := g.WasteTop(); ok {
		sb.WriteString(top.Styled())
		sb.WriteString(", " + strconv.Itoa(g.WasteLen()-1) + " waste, ")
	} else {
		sb.WriteString("No waste, ")
	}
	fmt.Fprintf(&sb, "%d stock, pass %d", g.StockLen(), g.Pass())
	if limit := g.PassLimit(); limit > 0 {
		fmt.Fprintf(&sb, "/%d", limit)
	}
	return sb.String()
}

// tableauLine renders a column as "n fd, " followed by its face-up cards.
func tableauLine(i int, pile []deck.Card) string {
	parts := []string{}
	down := 0
	for _, c := range pile {
		if !c.FaceUp() {
			down++
			continue
		}
		parts = append(parts, c.Styled())
	}
	line := strconv.Itoa(i) + ". "
	if down > 0 {
		line += strconv.Itoa(down) + " fd"
		if len(parts) > 0 {
			line += ", "
		}
	}
	return line + strings.Join(parts, ", ")
}

func getTableauPanel(g *klondike.Game) pterm.Panel {
	lines := make([]string, 0, klondike.NumTableaus)
	for i := 1; i <= klondike.NumTableaus; i++ {
		lines = append(lines, tableauLine(i, g.Tableau(i)))
	}
	return pterm.Panel{Data: box().WithTitle("|TABLEAU|").WithTitleTopLeft().Sprint(strings.Join(lines, "\n"))}
}

func getResultPanel(res autoplay.Result, err error) pterm.Panel {
	var outcome string
	switch res.Outcome {
	case autoplay.Won:
		outcome = pterm.LightGreen("Won")
	case autoplay.Forfeit:
		outcome = pterm.LightYellow("Forfeit")
	default:
		outcome = pterm.LightRed("Aborted")
	}
	info := pterm.Sprintf("%s\nMoves: %d\nDraws: %d\nRestocks: %d\nPass: %d", outcome, res.Moves, res.Draws, res.Restocks, res.FinalPass)
	if err != nil {
		info += "\n" + pterm.LightRed(err.Error())
	}
	return pterm.Panel{Data: box().WithTitle(pterm.LightYellow("|AUTOPLAY|")).WithTitleTopCenter().Sprint(info)}
}

func getLedgerPanel(j *ledger.Journal) pterm.Panel {
	head := j.Head()
	status := pterm.LightGreen("verified")
	if err := j.Verify(); err != nil {
		status = pterm.LightRed(err.Error())
	}
	info := pterm.Sprintf("Blocks: %d\nHead: %s\nLast: %s\n%s", j.Len(), head.Hash, head.Kind, status)
	return pterm.Panel{Data: box().WithTitle(pterm.LightMagenta("|LEDGER|")).WithTitleTopCenter().Sprint(info)}
}

// renderState lays the panels out in rows: scores and foundations, the
// tableau, then the deck and any additional panel.
func renderState(s *Session, additionalPanel ...pterm.Panel) string {
	g := s.game
	top := []pterm.Panel{
		getScorePanel(s.standard.Score(), s.vegas.Score(), s.standard.Seconds(), s.cfg.Timed),
		getFoundationPanel(g),
	}
	bottom := append([]pterm.Panel{getDeckPanel(g)}, additionalPanel...)
	out, err := pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		top,
		{getTableauPanel(g)},
		bottom,
	}).Srender()
	if err != nil {
		s.logger.Error("cannot render the table", "error", err)
		return ""
	}
	return out
}
