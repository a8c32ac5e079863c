package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"wordlearner/internal/domain"
	"wordlearner/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

func parseTab(s string) (domain.Tab, bool) {
	switch tab := domain.Tab(s); tab {
	case domain.TabLearn, domain.TabReview, domain.TabLearned:
		return tab, true
	}
	return "", false
}

func pageData(tab domain.Tab, page int) string {
	return fmt.Sprintf("page_%s_%d", tab, page)
}

// parsePageData reads "page_<tab>_<n>"
func parsePageData(data string) (domain.Tab, int, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(data), "page_")
	if !found {
		return "", 0, false
	}

	tabStr, pageStr, found := strings.Cut(rest, "_")
	if !found {
		return "", 0, false
	}

	tab, ok := parseTab(tabStr)
	if !ok {
		return "", 0, false
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return "", 0, false
	}
	return tab, page, true
}

func resetData(tab domain.Tab, wordID string) string {
	return fmt.Sprintf("reset_%s_%s", tab, wordID)
}

// parseResetData reads "reset_<tab>_<word id>"
func parseResetData(data string) (domain.Tab, string, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(data), "reset_")
	if !found {
		return "", "", false
	}

	tabStr, id, found := strings.Cut(rest, "_")
	if !found || id == "" {
		return "", "", false
	}

	tab, ok := parseTab(tabStr)
	if !ok {
		return "", "", false
	}
	return tab, id, true
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same text and keyboard as before, e.g. a double tap
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// noteFor turns a session error into a line shown above the view
func (h *Handler) noteFor(err error, userID int64) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, service.ErrPersist) {
		return persistWarning
	}

	h.logger.Error("Session operation failed", zap.Error(err), zap.Int64("user_id", userID))
	return "⚠️ Something went wrong. Try again later."
}

// showCard renders the Learn tab
func (h *Handler) showCard(c tele.Context, session *service.Session, note string) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateIdle, Tab: domain.TabLearn})

	state := session.State()
	stats := session.Stats()
	return h.reply(c, cardText(state, stats, note), cardMarkup(state, stats))
}

// showList renders one page of the Review or Learned tab
func (h *Handler) showList(c tele.Context, session *service.Session, tab domain.Tab, page int, note string) error {
	state := session.State()
	words := session.Words(tab.Status())
	lp := paginate(words, page)

	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateIdle, Tab: tab, Page: lp.Page})

	return h.reply(c,
		listText(tab, lp, len(words), state.NativeFirst, h.now(), note),
		listMarkup(tab, lp, session.Stats(), state.NativeFirst),
	)
}

// showCurrent re-renders whatever tab the user is looking at
func (h *Handler) showCurrent(c tele.Context, session *service.Session, note string) error {
	current := h.GetState(c.Sender().ID)
	if current.Tab == domain.TabReview || current.Tab == domain.TabLearned {
		return h.showList(c, session, current.Tab, current.Page, note)
	}
	return h.showCard(c, session, note)
}

// handleCallback handles callbacks no button was registered for
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose unique did not come through
	if callback.Unique == "" {
		switch data {
		case btnLearn.Unique:
			return h.handleShowCard(c)
		case btnReview.Unique:
			return h.handleTab(domain.TabReview)(c)
		case btnLearned.Unique:
			return h.handleTab(domain.TabLearned)(c)
		case btnReveal.Unique:
			return h.handleReveal(c)
		case btnMarkLearned.Unique:
			return h.handleReview(domain.StatusLearned)(c)
		case btnMarkNotLearned.Unique:
			return h.handleReview(domain.StatusNotLearned)(c)
		case btnToggleOrder.Unique:
			return h.handleToggleOrder(c)
		case btnImport.Unique:
			return h.handleImport(c)
		case btnCancel.Unique:
			return h.handleCancel(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "page_"):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, "reset_"):
		return h.handleReset(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleShowCard shows the Learn tab
func (h *Handler) handleShowCard(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	return h.showCard(c, h.sessions.Get(ctx, userID), "")
}

// handleTab shows the first page of a list tab
func (h *Handler) handleTab(tab domain.Tab) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		unlock := h.lockUser(userID)
		defer unlock()

		ctx, cancel := requestContext()
		defer cancel()

		return h.showList(c, h.sessions.Get(ctx, userID), tab, 1, "")
	}
}

// handleReveal flips the current card
func (h *Handler) handleReveal(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session := h.sessions.Get(ctx, userID)
	session.ToggleReveal()
	return h.showCard(c, session, "")
}

// handleReview commits the current card with outcome
func (h *Handler) handleReview(outcome domain.Status) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		unlock := h.lockUser(userID)
		defer unlock()

		ctx, cancel := requestContext()
		defer cancel()

		session := h.sessions.Get(ctx, userID)
		reviewed, err := session.Review(ctx, outcome)
		if reviewed {
			h.logger.Info("Word reviewed",
				zap.Int64("user_id", userID),
				zap.Stringer("outcome", outcome),
			)
		}
		return h.showCard(c, session, h.noteFor(err, userID))
	}
}

// handleToggleOrder swaps which side of the card is shown first
func (h *Handler) handleToggleOrder(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session := h.sessions.Get(ctx, userID)
	err := session.ToggleNativeFirst(ctx)
	return h.showCurrent(c, session, h.noteFor(err, userID))
}

// handleImport waits for the next text message or document
func (h *Handler) handleImport(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingImport, Tab: domain.TabLearn})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))

	return h.reply(c, importPrompt(h.sessions.Delimiter()), markup)
}

// handleCancel cancels current operation and returns to the card
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	return h.showCard(c, h.sessions.Get(ctx, userID), "")
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	tab, page, ok := parsePageData(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	return h.showList(c, h.sessions.Get(ctx, userID), tab, page, "")
}

// handleReset sends one word back to Learning and redraws its list
func (h *Handler) handleReset(c tele.Context, data string) error {
	tab, id, ok := parseResetData(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid word"})
	}

	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session := h.sessions.Get(ctx, userID)
	word, found := session.Word(id)
	if !found {
		return c.Respond(&tele.CallbackResponse{Text: "Word not found"})
	}

	if _, err := session.ResetWord(ctx, id); err != nil {
		note := h.noteFor(err, userID)
		return h.showList(c, session, tab, h.listPageFor(userID, tab), note)
	}

	h.logger.Info("Word sent back to learning",
		zap.Int64("user_id", userID),
		zap.String("word_id", id),
	)

	note := fmt.Sprintf("↩️ %s is back in Learn.", word.Front(session.State().NativeFirst))
	return h.showList(c, session, tab, h.listPageFor(userID, tab), note)
}

// listPageFor keeps the page the user was on when they stay on the same tab
func (h *Handler) listPageFor(userID int64, tab domain.Tab) int {
	if current := h.GetState(userID); current.Tab == tab {
		return current.Page
	}
	return 1
}
