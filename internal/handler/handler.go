package handler

import (
	"context"
	"sync"
	"time"

	"wordlearner/internal/domain"
	"wordlearner/internal/middleware"
	"wordlearner/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	sessions    *service.Sessions
	logger      *zap.Logger
	now         func() time.Time

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// One lock per user; a session is not safe for concurrent use
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	sessions *service.Sessions,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands and text do their own password check
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	authorized := h.bot.Group()
	authorized.Use(middleware.AuthMiddleware(h.authService, h.logger))

	authorized.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	authorized.Handle(&btnLearn, h.handleShowCard)
	authorized.Handle(&btnReview, h.handleTab(domain.TabReview))
	authorized.Handle(&btnLearned, h.handleTab(domain.TabLearned))
	authorized.Handle(&btnReveal, h.handleReveal)
	authorized.Handle(&btnMarkLearned, h.handleReview(domain.StatusLearned))
	authorized.Handle(&btnMarkNotLearned, h.handleReview(domain.StatusNotLearned))
	authorized.Handle(&btnToggleOrder, h.handleToggleOrder)
	authorized.Handle(&btnImport, h.handleImport)
	authorized.Handle(&btnCancel, h.handleCancel)

	// Generic callback handler for dynamic data
	authorized.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle, Tab: domain.TabLearn}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, Tab: domain.TabLearn})
}

// lockUser serializes work on one user's session and returns the unlock func
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// reply edits the message behind a callback, or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// Inline keyboard buttons. Tab buttons get their counters at render time.
var (
	btnLearn = tele.Btn{
		Unique: "tab_learn",
		Text:   "📚 Learn",
	}
	btnReview = tele.Btn{
		Unique: "tab_review",
		Text:   "🔁 Review",
	}
	btnLearned = tele.Btn{
		Unique: "tab_learned",
		Text:   "✅ Learned",
	}
	btnReveal = tele.Btn{
		Unique: "reveal",
		Text:   "👀 Show translation",
	}
	btnMarkLearned = tele.Btn{
		Unique: "mark_learned",
		Text:   "Learned ➡️",
	}
	btnMarkNotLearned = tele.Btn{
		Unique: "mark_not_learned",
		Text:   "⬅️ Not learned",
	}
	btnToggleOrder = tele.Btn{
		Unique: "toggle_order",
		Text:   "🔄 Swap sides",
	}
	btnImport = tele.Btn{
		Unique: "import",
		Text:   "📥 Import",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
)
