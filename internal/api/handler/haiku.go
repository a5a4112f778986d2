package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/service"
	"github.com/timmy/haikuforge/internal/web"
)

// HaikuHandler serves the gallery page and the JSON API.
type HaikuHandler struct {
	forge *service.ForgeService
	theme web.Theme
}

// NewHaikuHandler creates a new haiku handler.
// Parameters:
//   - forge: workflow service.
//   - theme: page theme used by the HTML endpoints.
//
// Returns:
//   - *HaikuHandler: initialized handler.
func NewHaikuHandler(forge *service.ForgeService, theme web.Theme) *HaikuHandler {
	return &HaikuHandler{forge: forge, theme: theme}
}

// SubmitForm is the page form.
type SubmitForm struct {
	Topic string `form:"topic"`
}

// CreateRequest is the body of POST /api/v1/haikus.
type CreateRequest struct {
	Topic string `json:"topic"`
}

// CreateResponse is returned by POST /api/v1/haikus.
type CreateResponse struct {
	Haiku    *domain.Poem          `json:"haiku,omitempty"`
	Color    service.Color         `json:"color,omitempty"`
	Saved    bool                  `json:"saved"`
	Messages []service.Message     `json:"messages"`
	Archive  []service.GalleryItem `json:"archive"`
}

// Page handles GET /. It renders the archive without submitting anything.
func (h *HaikuHandler) Page(c *gin.Context) {
	out := h.forge.Submit(c.Request.Context(), service.Submission{})
	c.HTML(http.StatusOK, "index.html", web.NewPage(h.theme, out))
}

// Submit handles POST / from the page form. Posting the form is the
// submit press; a blank topic renders the page unchanged.
func (h *HaikuHandler) Submit(c *gin.Context) {
	var form SubmitForm
	if err := c.ShouldBind(&form); err != nil {
		form.Topic = ""
	}

	out := h.forge.Submit(c.Request.Context(), service.Submission{Topic: form.Topic, Pressed: true})
	c.HTML(http.StatusOK, "index.html", web.NewPage(h.theme, out))
}

// List handles GET /api/v1/haikus.
func (h *HaikuHandler) List(c *gin.Context) {
	gallery := h.forge.Gallery(c.Request.Context())
	if gallery.Err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Archive retrieval failed: " + cause(gallery.Err),
			"haikus":  gallery.Items,
			"total":   0,
			"backend": h.forge.Backend(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"haikus": gallery.Items,
		"total":  len(gallery.Items),
	})
}

// Create handles POST /api/v1/haikus.
func (h *HaikuHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "topic is required",
		})
		return
	}

	out := h.forge.Submit(c.Request.Context(), service.Submission{Topic: req.Topic, Pressed: true})

	resp := CreateResponse{
		Haiku:    out.Poem,
		Color:    out.Color,
		Saved:    out.Saved,
		Messages: out.Messages(),
		Archive:  out.Gallery.Items,
	}

	status := http.StatusCreated
	if out.GenerationErr != nil || out.SaveErr != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

func cause(err error) string {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) && storeErr.Err != nil {
		return storeErr.Err.Error()
	}
	return err.Error()
}
