package handlers

import (
	"embed"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/clima/internal/countries"
	"ulascansenturk/clima/internal/lookup"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type pageData struct {
	Countries      []countries.Country
	Weather        WeatherResponse
	RefreshSeconds int
}

func (h *WeatherHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	l := h.session(w, r)
	snap := l.Snapshot()

	data := pageData{
		Countries: countries.All(),
		Weather:   newWeatherResponse(snap),
	}

	// reload once the notification has expired so it disappears on its own
	if snap.Notification != nil {
		remaining := time.Until(snap.Notification.ExpiresAt).Seconds()
		data.RefreshSeconds = int(math.Max(1, math.Ceil(remaining)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("failed to render page")
	}
}

// SubmitForm runs the lookup for a plain form post and redirects back to the
// page, which renders whatever state the lookup left behind.
func (h *WeatherHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	req := lookup.Request{
		City:        r.PostFormValue("city"),
		CountryCode: r.PostFormValue("country"),
	}

	if req.CountryCode != "" {
		if _, ok := countries.Lookup(req.CountryCode); !ok {
			respondWithError(w, http.StatusBadRequest, "unsupported country code: "+req.CountryCode)
			return
		}
	}

	l := h.session(w, r)
	if _, err := l.Submit(r.Context(), req); err != nil {
		log.Debug().Err(err).Str("city", req.City).Str("country_code", req.CountryCode).Msg("form lookup did not succeed")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
