package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"ulascansenturk/clima/internal/countries"
	"ulascansenturk/clima/internal/db/lookuplog"
	"ulascansenturk/clima/internal/lookup"
	"ulascansenturk/clima/internal/sessions"
)

type WeatherHandler struct {
	sessions *sessions.Store
	lookups  lookuplog.Repository
	router   chi.Router
}

// NewWeatherHandler wires the page and the JSON API. lookups may be nil when
// the audit log is disabled.
func NewWeatherHandler(store *sessions.Store, lookups lookuplog.Repository) *WeatherHandler {
	h := &WeatherHandler{
		sessions: store,
		lookups:  lookups,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.RenderPage)
	r.Post("/", h.SubmitForm)

	r.Route("/api/v1", func(cr chi.Router) {
		cr.Get("/countries", h.ListCountries)
		cr.Get("/weather", h.GetWeather)
		cr.Post("/weather", h.SubmitWeather)
		cr.Get("/lookups", h.ListLookups)
	})

	h.router = r
	return h
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// session resolves the caller's controller, issuing a cookie for new sessions.
func (h *WeatherHandler) session(w http.ResponseWriter, r *http.Request) *lookup.WeatherLookup {
	var current string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		current = cookie.Value
	}

	id, l := h.sessions.GetOrCreate(current)
	if id != current {
		setSessionCookie(w, id)
	}
	return l
}

func (h *WeatherHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, countries.All())
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	l := h.session(w, r)
	respondWithJSON(w, http.StatusOK, newWeatherResponse(l.Snapshot()))
}

func (h *WeatherHandler) SubmitWeather(w http.ResponseWriter, r *http.Request) {
	req, err := decodeWeatherRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Country != "" {
		if _, ok := countries.Lookup(req.Country); !ok {
			respondWithError(w, http.StatusBadRequest, "unsupported country code: "+req.Country)
			return
		}
	}

	l := h.session(w, r)
	snap, err := l.Submit(r.Context(), lookup.Request{City: req.City, CountryCode: req.Country})

	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, newWeatherResponse(snap))
	case errors.Is(err, lookup.ErrValidationFailed):
		respondWithJSON(w, http.StatusBadRequest, newWeatherResponse(snap))
	case errors.Is(err, lookup.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, newWeatherResponse(snap))
	case errors.Is(err, lookup.ErrTransportFailure):
		// not surfaced to the user, the controller already logged it
		respondWithJSON(w, http.StatusOK, newWeatherResponse(snap))
	case errors.Is(err, lookup.ErrSuperseded):
		respondWithError(w, http.StatusConflict, "superseded by a newer submission")
	case errors.Is(err, lookup.ErrClosed):
		respondWithError(w, http.StatusServiceUnavailable, "session closed")
	default:
		log.Error().Err(err).Msg("unexpected weather lookup error")
		respondWithError(w, http.StatusInternalServerError, "failed to get weather data")
	}
}

func (h *WeatherHandler) ListLookups(w http.ResponseWriter, r *http.Request) {
	if h.lookups == nil {
		respondWithError(w, http.StatusNotFound, "lookup history is not enabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.lookups.RecentLookups(limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to read lookup history")
		respondWithError(w, http.StatusInternalServerError, "failed to read lookup history")
		return
	}

	respondWithJSON(w, http.StatusOK, LookupsResponse{Lookups: records})
}

func decodeWeatherRequest(r *http.Request) (WeatherRequest, error) {
	var req WeatherRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return WeatherRequest{}, errors.New("malformed JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return WeatherRequest{}, errors.New("malformed form body")
	}
	req.City = r.PostFormValue("city")
	req.Country = r.PostFormValue("country")
	return req, nil
}
