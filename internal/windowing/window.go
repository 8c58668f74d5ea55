// Package windowing trims conversation history before it is sent.
//
// Invariant:
//   - A user message and the assistant replies that answer it travel
//     together; the window never starts mid-exchange.
//   - The newest exchange is always sent, even when it alone exceeds the
//     budget, so the user's just-typed message is never dropped.
package windowing

import (
	"github.com/petasbytes/personachat/chat"
	"github.com/petasbytes/personachat/internal/metrics"
)

// Stats summarizes the result of window preparation.
type Stats struct {
	Total            int // estimated runes for included exchanges
	Budget           int
	MaxMessages      int
	IncludedGroups   int
	SkippedGroups    int
	OverBudgetNewest bool
}

// group marks a contiguous [Start, End) exchange within the history.
type group struct {
	Start, End int
}

// groupExchanges splits history into exchanges. An exchange begins at each
// user message and runs until the next one; any leading assistant or system
// messages form an exchange of their own.
func groupExchanges(msgs []chat.Message) []group {
	var groups []group
	start := 0
	for i, m := range msgs {
		if m.Role == chat.RoleUser && i > start {
			groups = append(groups, group{Start: start, End: i})
			start = i
		}
	}
	if start < len(msgs) {
		groups = append(groups, group{Start: start, End: len(msgs)})
	}
	return groups
}

func groupCost(g group, msgs []chat.Message) int {
	total := 0
	for i := g.Start; i < g.End; i++ {
		total += metrics.MessageRunes(msgs[i])
	}
	return total
}

// PrepareSendWindow returns the newest subslice of msgs that fits within
// both caps without splitting an exchange.
//
// Rules:
//   - Scan exchanges newest to oldest, including whole exchanges while the
//     running totals stay within budget runes and maxMessages messages.
//   - maxMessages <= 0 or budget <= 0 disables that cap.
//   - The newest exchange is always included; when it alone exceeds the rune
//     budget, OverBudgetNewest is set so callers can surface it.
func PrepareSendWindow(msgs []chat.Message, maxMessages, budget int) ([]chat.Message, Stats) {
	stats := Stats{Budget: budget, MaxMessages: maxMessages}
	if len(msgs) == 0 {
		return nil, stats
	}

	groups := groupExchanges(msgs)

	total := 0
	count := 0
	startIdx := len(groups)
	for gi := len(groups) - 1; gi >= 0; gi-- {
		g := groups[gi]
		cost := groupCost(g, msgs)
		size := g.End - g.Start

		if gi == len(groups)-1 {
			// Newest exchange: unconditional.
			total += cost
			count += size
			startIdx = gi
			if budget > 0 && cost > budget {
				stats.OverBudgetNewest = true
			}
			continue
		}
		if budget > 0 && total+cost > budget {
			break
		}
		if maxMessages > 0 && count+size > maxMessages {
			break
		}
		total += cost
		count += size
		startIdx = gi
	}

	stats.Total = total
	stats.IncludedGroups = len(groups) - startIdx
	stats.SkippedGroups = startIdx
	return msgs[groups[startIdx].Start:], stats
}
