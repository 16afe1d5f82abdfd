package finder

import (
	"net/http"

	"github.com/taibuivan/artdex/internal/platform/respond"
	"github.com/taibuivan/artdex/internal/platform/validate"
)

// Handler exposes source URL resolution over HTTP.
type Handler struct {
	engine *Engine
}

// NewHandler constructs a new finder [Handler].
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

/*
GET /api/v1/artists/finder.

Description: Resolves a source URL (image page, gallery, raw image) to the
active artists whose stored URLs cover it.

Request:
  - url: string (The source URL to resolve; required)

Response:
  - 200: data: []Artist (Empty array when nothing matches)
  - 400: Missing url parameter
*/
func (handler *Handler) FindArtists(writer http.ResponseWriter, request *http.Request) {
	sourceURL := request.URL.Query().Get("url")
	if sourceURL == "" {
		respond.Error(writer, request, validate.RequiredError("url", "This field is required"))
		return
	}

	artists, err := handler.engine.FindArtists(request.Context(), sourceURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, artists)
}
