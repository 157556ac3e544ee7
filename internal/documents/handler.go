package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docintake-backend/internal/shared/server/respond"
)

const maxUploadSize = 50 << 20 // 50MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the intake routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/documents", h.list)
	r.GET("/document/:id", h.get)
	r.POST("/upload", h.upload)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{"status": "ok"})
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "db error", err)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, gin.H{"success": true, "documents": resp})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	doc, fields, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "db error", err)
		return
	}

	respond.OK(c, gin.H{
		"success":  true,
		"document": toResponse(doc),
		"fields":   toFieldResponses(fields),
	})
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no file uploaded", err)
		return
	}
	defer file.Close()

	doc, result, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upload failed", err)
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{
		"success":    true,
		"documentId": doc.ID,
		"analysis":   result,
	})
}
