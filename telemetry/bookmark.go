package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFeedingFrenzy BookmarkType = "feeding_frenzy"
	BookmarkGrowthSpurt   BookmarkType = "growth_spurt"
	BookmarkSetback       BookmarkType = "setback"
	BookmarkCrowdedArena  BookmarkType = "crowded_arena"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags stats windows that stand out from the recent
// history of a match.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	peakRadius float64 // largest player radius since the last setback
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFeedingFrenzy(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkGrowthSpurt(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSetback(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCrowdedArena(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.PlayerRadius > bd.peakRadius {
		bd.peakRadius = stats.PlayerRadius
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkFeedingFrenzy fires when the player eats at least three bots in a
// window and more than twice the rolling average.
func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	if stats.BotsEaten < 3 {
		return nil
	}
	history := bd.getHistory()
	if len(history) < 2 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.BotsEaten
	}
	avg := float64(total) / float64(len(history))
	if float64(stats.BotsEaten) <= avg*2 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFeedingFrenzy,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Ate %d bots, average %.1f", stats.BotsEaten, avg),
	}
}

// checkGrowthSpurt fires when the largest cell grew by half since the
// previous window.
func (bd *BookmarkDetector) checkGrowthSpurt(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) == 0 {
		return nil
	}
	prevIdx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	prev := bd.history[prevIdx].PlayerRadius
	if prev <= 0 || stats.PlayerRadius < prev*1.5 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkGrowthSpurt,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Largest cell grew from %.0f to %.0f", prev, stats.PlayerRadius),
	}
}

// checkSetback fires when the largest cell drops below 60% of its peak.
func (bd *BookmarkDetector) checkSetback(stats WindowStats) *Bookmark {
	if bd.peakRadius == 0 || stats.PlayerCells == 0 {
		return nil
	}
	if stats.PlayerRadius >= bd.peakRadius*0.6 {
		return nil
	}

	oldPeak := bd.peakRadius
	bd.peakRadius = stats.PlayerRadius

	return &Bookmark{
		Type:        BookmarkSetback,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Largest cell fell from %.0f to %.0f", oldPeak, stats.PlayerRadius),
	}
}

// checkCrowdedArena fires when most live bots outsize the player's largest
// cell.
func (bd *BookmarkDetector) checkCrowdedArena(stats WindowStats) *Bookmark {
	if stats.LiveBots < 5 || stats.PlayerCells == 0 {
		return nil
	}
	if stats.BotRadiusP50 <= stats.PlayerRadius {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkCrowdedArena,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Median bot radius %.0f exceeds player %.0f", stats.BotRadiusP50, stats.PlayerRadius),
	}
}
