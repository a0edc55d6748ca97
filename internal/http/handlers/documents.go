package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/portfolio-api/internal/config"
	"github.com/geocoder89/portfolio-api/internal/domain/document"
	"github.com/gin-gonic/gin"
)

type DocumentStore interface {
	List(ctx context.Context) ([]document.Document, error)
	Insert(ctx context.Context, doc document.Document) (document.InsertResult, error)
}

// Messages are the envelope texts for one collection.
type Messages struct {
	Listed       string
	ListFailed   string
	Created      string
	CreateFailed string
}

var (
	SkillMessages = Messages{
		Listed:       "All skills retrieved successfully",
		ListFailed:   "Can't retrieve the skills",
		Created:      "Skill added successfully",
		CreateFailed: "Can't create a skill",
	}
	ProjectMessages = Messages{
		Listed:       "All projects retrieved successfully",
		ListFailed:   "Can't retrieve the projects",
		Created:      "Project added successfully",
		CreateFailed: "Can't create a project",
	}
)

// DocumentsHandler serves list and create for one schema-less collection.
// Neither route checks a bearer token.
type DocumentsHandler struct {
	store DocumentStore
	msgs  Messages
}

func NewDocumentsHandler(store DocumentStore, msgs Messages) *DocumentsHandler {
	return &DocumentsHandler{store: store, msgs: msgs}
}

func (h *DocumentsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	docs, err := h.store.List(cctx)

	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "documents_list_failed", "route", ctx.FullPath(), "err", err)
		RespondInternal(ctx, h.msgs.ListFailed)

		return
	}

	if docs == nil {
		docs = []document.Document{}
	}

	RespondJSONWithETag(ctx, http.StatusOK, Envelope{
		Success: true,
		Message: h.msgs.Listed,
		Data:    docs,
	})
}

func (h *DocumentsHandler) Create(ctx *gin.Context) {
	var doc document.Document

	if !BindJSON(ctx, &doc) {
		return
	}

	if doc == nil {
		RespondBadRequest(ctx, MsgInvalidBody, gin.H{"json": "expected_object"})
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := h.store.Insert(cctx, doc)

	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "documents_insert_failed", "route", ctx.FullPath(), "err", err)
		RespondInternal(ctx, h.msgs.CreateFailed)
		return
	}

	RespondOK(ctx, http.StatusOK, h.msgs.Created, res)
}
