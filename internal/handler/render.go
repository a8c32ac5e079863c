package handler

import (
	"fmt"
	"strings"
	"time"

	"wordlearner/internal/deck"
	"wordlearner/internal/domain"
	"wordlearner/internal/service"

	tele "gopkg.in/telebot.v3"
)

const pageSize = 7

const persistWarning = "⚠️ Progress could not be saved. It is kept until the bot restarts."

// listPage is one page of a Review or Learned list
type listPage struct {
	Words      []domain.WordRecord
	Page       int
	TotalPages int
	Offset     int
}

// paginate clamps page into range; an empty list still has one page
func paginate(words []domain.WordRecord, page int) listPage {
	totalPages := (len(words) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * pageSize
	end := offset + pageSize
	if end > len(words) {
		end = len(words)
	}

	return listPage{
		Words:      words[offset:end],
		Page:       page,
		TotalPages: totalPages,
		Offset:     offset,
	}
}

func tabTitle(tab domain.Tab) string {
	switch tab {
	case domain.TabReview:
		return "🔁 Review"
	case domain.TabLearned:
		return "✅ Learned"
	default:
		return "📚 Learn"
	}
}

// tabsRow returns the tab switcher with live counters
func tabsRow(markup *tele.ReplyMarkup, stats service.Stats) tele.Row {
	row := tele.Row{}
	for _, t := range []struct {
		tab domain.Tab
		btn tele.Btn
	}{
		{domain.TabLearn, btnLearn},
		{domain.TabReview, btnReview},
		{domain.TabLearned, btnLearned},
	} {
		row = append(row, markup.Data(fmt.Sprintf("%s (%d)", t.btn.Text, stats.Count(t.tab)), t.btn.Unique))
	}
	return row
}

func withNote(text, note string) string {
	if note == "" {
		return text
	}
	return note + "\n\n" + text
}

// cardText renders the Learn tab
func cardText(state domain.AppState, stats service.Stats, note string) string {
	if stats.Total == 0 {
		return withNote("📭 Your deck is empty.\n\nTap 📥 Import and send lines like:\nword,translation", note)
	}

	word, ok := deck.CurrentWord(state)
	if !ok {
		return withNote("🎉 Nothing left to learn!\n\nImport more words or reset some from 🔁 Review.", note)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s · %d left\n\n", tabTitle(domain.TabLearn), stats.Learning)
	fmt.Fprintf(&b, "📝 %s", word.Front(state.NativeFirst))
	if state.RevealTranslation {
		fmt.Fprintf(&b, "\n🔄 %s", word.Back(state.NativeFirst))
	}
	return withNote(b.String(), note)
}

// cardMarkup returns the Learn tab keyboard
func cardMarkup(state domain.AppState, stats service.Stats) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if _, ok := deck.CurrentWord(state); ok {
		reveal := btnReveal
		if state.RevealTranslation {
			reveal.Text = "🙈 Hide translation"
		}
		rows = append(rows,
			markup.Row(reveal),
			markup.Row(btnMarkNotLearned, btnMarkLearned),
		)
	}

	rows = append(rows,
		markup.Row(btnToggleOrder, btnImport),
		tabsRow(markup, stats),
	)

	markup.Inline(rows...)
	return markup
}

// listText renders one page of the words holding tab's status
func listText(tab domain.Tab, lp listPage, total int, nativeFirst bool, now time.Time, note string) string {
	if total == 0 {
		return withNote(fmt.Sprintf("%s\n\nNothing here yet.", tabTitle(tab)), note)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d (page %d/%d)\n", tabTitle(tab), total, lp.Page, lp.TotalPages)
	for i, w := range lp.Words {
		fmt.Fprintf(&b, "\n%d. %s — %s", lp.Offset+i+1, w.Front(nativeFirst), w.Back(nativeFirst))
		if w.LastReviewedAt != nil {
			fmt.Fprintf(&b, "\n    Reviewed: %s", domain.ReviewedLabel(*w.LastReviewedAt, now))
		}
	}
	b.WriteString("\n\nTap a word to send it back to 📚 Learn.")
	return withNote(b.String(), note)
}

// listMarkup returns reset buttons for the page, navigation and tabs
func listMarkup(tab domain.Tab, lp listPage, stats service.Stats, nativeFirst bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, w := range lp.Words {
		btn := markup.Data("↩️ "+w.Front(nativeFirst), resetData(tab, w.ID))
		rows = append(rows, markup.Row(btn))
	}

	if lp.TotalPages > 1 {
		navRow := tele.Row{}
		if lp.Page > 1 {
			navRow = append(navRow, markup.Data("⬅️", pageData(tab, lp.Page-1)))
		}
		if lp.Page < lp.TotalPages {
			navRow = append(navRow, markup.Data("➡️", pageData(tab, lp.Page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, tabsRow(markup, stats))

	markup.Inline(rows...)
	return markup
}

func importPrompt(delimiter string) string {
	return fmt.Sprintf(
		"📥 Send words one per line as\nword%stranslation\n\nor upload a .csv file.",
		delimiter,
	)
}
