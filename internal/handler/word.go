package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"wordlearner/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxImportSize caps uploaded import files
const maxImportSize = 1 << 20

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorReply)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("❌ Wrong password")
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(errorReply)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)

		unlock := h.lockUser(userID)
		defer unlock()
		return h.showCard(c, h.sessions.Get(ctx, userID), "✅ Access granted!")
	}

	// User is authorized, handle based on state
	if h.GetState(userID).State != domain.StateWaitingImport {
		return c.Send("Tap 📥 Import first to add words, or open /start.")
	}

	return h.importText(c, text)
}

// handleDocument imports an uploaded .csv or .txt file
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".csv", ".txt":
	default:
		return c.Send("Send a .csv or .txt file with one word,translation pair per line.")
	}

	if doc.FileSize > maxImportSize {
		return c.Send(fmt.Sprintf("File is too large, the limit is %d KB.", maxImportSize>>10))
	}

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download import file",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("file_name", doc.FileName),
		)
		return c.Send(errorReply)
	}
	defer reader.Close()

	content, err := io.ReadAll(io.LimitReader(reader, maxImportSize))
	if err != nil {
		h.logger.Error("Failed to read import file", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorReply)
	}

	return h.importText(c, string(content))
}

// importText adds the pasted or uploaded lines to the user's deck
func (h *Handler) importText(c tele.Context, text string) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session := h.sessions.Get(ctx, userID)
	count, err := session.Import(ctx, text)
	if count == 0 {
		return c.Send(fmt.Sprintf("No words found. %s", importPrompt(h.sessions.Delimiter())))
	}

	h.logger.Info("Words imported",
		zap.Int64("user_id", userID),
		zap.Int("count", count),
	)

	note := h.noteFor(err, userID)
	if note == "" {
		note = fmt.Sprintf("✅ Imported %d words.", count)
	}
	h.ResetState(userID)
	return h.showCard(c, session, note)
}
