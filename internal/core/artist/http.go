package artist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/artdex/internal/platform/middleware"
	requestutil "github.com/taibuivan/artdex/internal/platform/request"
	"github.com/taibuivan/artdex/internal/platform/respond"
	"github.com/taibuivan/artdex/internal/platform/sec"
	"github.com/taibuivan/artdex/internal/platform/validate"
	"github.com/taibuivan/artdex/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for artist records, their version
// history, and source URL resolution.
type Handler struct {
	service *Service

	// findArtists serves GET /finder; injected so the handler does not
	// depend on the finder package's internals.
	findArtists http.HandlerFunc
}

// NewHandler constructs a new artist [Handler].
func NewHandler(service *Service, findArtists http.HandlerFunc) *Handler {
	return &Handler{service: service, findArtists: findArtists}
}

// Routes returns a [chi.Router] configured with artist-related endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listArtists)
	router.Get("/finder", handler.findArtists)
	router.Get("/{id}", handler.getArtist)
	router.Get("/{id}/versions", handler.listVersions)

	// ## Editing (Auth Required)
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireAuth)

		editorRoute.Post("/", handler.createArtist)
		editorRoute.Put("/{id}", handler.updateArtist)
		editorRoute.Post("/{id}/revert", handler.revertArtist)

		// ## Moderation (Moderator or above)
		editorRoute.Group(func(modRoute chi.Router) {
			modRoute.Use(middleware.RequireRole(sec.RoleModerator))

			modRoute.Delete("/{id}", handler.deleteArtist)
			modRoute.Post("/{id}/undelete", handler.undeleteArtist)
			modRoute.Post("/{id}/ban", handler.banArtist)
			modRoute.Post("/{id}/unban", handler.unbanArtist)
		})
	})

	return router
}

// saveRequest is the JSON payload for create and update.
type saveRequest struct {
	Name       string   `json:"name"`
	OtherNames []string `json:"other_names"`
	GroupName  string   `json:"group_name"`
	URLText    string   `json:"url_text"`
}

func (r saveRequest) input() SaveInput {
	return SaveInput{
		Name:       r.Name,
		OtherNames: r.OtherNames,
		GroupName:  r.GroupName,
		URLText:    r.URLText,
	}
}

// # Artist Endpoints

/*
GET /api/v1/artists.

Description: Retrieves a paginated list of artists. Soft-deleted artists are
excluded unless explicitly requested.

Request:
  - q: string (Matches name, aliases, and stored URLs)
  - include_inactive: bool
  - limit: int
  - page: int

Response:
  - 200: data: []Artist, meta: pagination block
*/
func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:           request.URL.Query().Get("q"),
		IncludeInactive: request.URL.Query().Get("include_inactive") == "true",
	}

	artists, total, err := handler.service.ListArtists(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, artists, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/artists/{id}.

Response:
  - 200: data: Artist (URL collection included)
  - 404: Unknown id
*/
func (handler *Handler) getArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.GetArtist(request.Context(), artistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

/*
POST /api/v1/artists.

Description: Creates an artist from raw submission fields. Name and aliases
are normalized; url_text is parsed line by line, '-'-prefixed entries are
recorded as inactive. The creating editor becomes the first version's updater.

Request:
  - name: string
  - other_names: []string
  - group_name: string
  - url_text: string (Whitespace-separated, optionally '-'-signed URLs)

Response:
  - 201: data: Artist
  - 400: Validation failure (bad name, URL without http scheme)
*/
func (handler *Handler) createArtist(writer http.ResponseWriter, request *http.Request) {
	editorID, err := requestutil.RequiredEditorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload saveRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.CreateArtist(request.Context(), payload.input(), editorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subject)
}

/*
PUT /api/v1/artists/{id}.

Description: Full update of the mutable fields. The URL collection is
reconciled against the submitted url_text; rows whose only change is the
active flag keep their identity. A version is recorded when anything
actually changed.

Response:
  - 200: data: Artist
  - 400: Validation failure
  - 404: Unknown id
*/
func (handler *Handler) updateArtist(writer http.ResponseWriter, request *http.Request) {
	editorID, err := requestutil.RequiredEditorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload saveRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.UpdateArtist(request.Context(), artistID, payload.input(), SaveOptions{}, editorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

/*
DELETE /api/v1/artists/{id}.

Description: Soft delete. The record and its history stay intact; the artist
is excluded from listings and source resolution until undeleted.

Response:
  - 204: Deleted
  - 404: Unknown id
*/
func (handler *Handler) deleteArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArtist(request.Context(), artistID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/artists/{id}/undelete.

Response:
  - 200: data: Artist
  - 404: Unknown id
*/
func (handler *Handler) undeleteArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UndeleteArtist(request.Context(), artistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subject, err := handler.service.GetArtist(request.Context(), artistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

// # Moderation Endpoints

/*
POST /api/v1/artists/{id}/ban.

Description: Flags the artist as banned. The flag is versioned like any
other metadata change.

Response:
  - 200: data: Artist
  - 404: Unknown id
*/
func (handler *Handler) banArtist(writer http.ResponseWriter, request *http.Request) {
	handler.setBanned(writer, request, true)
}

/*
POST /api/v1/artists/{id}/unban.

Response:
  - 200: data: Artist
  - 404: Unknown id
*/
func (handler *Handler) unbanArtist(writer http.ResponseWriter, request *http.Request) {
	handler.setBanned(writer, request, false)
}

func (handler *Handler) setBanned(writer http.ResponseWriter, request *http.Request, banned bool) {
	editorID, err := requestutil.RequiredEditorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var subject *Artist
	if banned {
		subject, err = handler.service.BanArtist(request.Context(), artistID, editorID)
	} else {
		subject, err = handler.service.UnbanArtist(request.Context(), artistID, editorID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}

// # Version Endpoints

/*
GET /api/v1/artists/{id}/versions.

Description: Paginated version history, newest first.

Response:
  - 200: data: []Version, meta: pagination block
  - 404: Unknown id
*/
func (handler *Handler) listVersions(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	versions, total, err := handler.service.ListVersions(request.Context(), artistID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, versions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/artists/{id}/revert.

Description: Restores the artist's diffable fields from a prior version of
the same artist. The revert is performed as a normal save, so it produces a
fresh version rather than rewriting history.

Request:
  - version_id: int

Response:
  - 200: data: Artist
  - 404: Unknown artist or version
  - 422: Version belongs to a different artist
*/
func (handler *Handler) revertArtist(writer http.ResponseWriter, request *http.Request) {
	editorID, err := requestutil.RequiredEditorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		VersionID int `json:"version_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if payload.VersionID <= 0 {
		respond.Error(writer, request, validate.RequiredError(FieldVersionID, "Must be a positive integer"))
		return
	}

	subject, err := handler.service.RevertArtist(request.Context(), artistID, payload.VersionID, editorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subject)
}
