package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showbill/showbill/internal/handler"
	"github.com/showbill/showbill/internal/repository"
	"github.com/showbill/showbill/internal/router"
	"github.com/showbill/showbill/internal/service"
)

// newTestApp wires the full stack — repositories over in-memory sqlite,
// domain services, handlers, routes — exactly as main does, minus the
// cache, rate limit and event publisher.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	const schema = `
	CREATE TABLE venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		genres TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		seeking_talent BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		genres TEXT NOT NULL DEFAULT '',
		image_link TEXT NOT NULL DEFAULT '',
		facebook_link TEXT NOT NULL DEFAULT '',
		website_link TEXT NOT NULL DEFAULT '',
		seeking_venue BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		venue_id INTEGER NOT NULL REFERENCES venues(id),
		artist_id INTEGER NOT NULL REFERENCES artists(id),
		start_time DATETIME NOT NULL
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)

	log := zerolog.Nop()
	venueSvc := service.NewVenueService(venues, shows, nil, log, service.DefaultStoreTimeout)
	artistSvc := service.NewArtistService(artists, shows, nil, log, service.DefaultStoreTimeout)
	showSvc := service.NewShowService(shows, venues, artists, nil, log, service.DefaultStoreTimeout)

	e := echo.New()
	router.RegisterRoutes(e,
		&handler.VenueHandler{Venues: venueSvc},
		&handler.ArtistHandler{Artists: artistSvc},
		&handler.ShowHandler{Shows: showSvc},
		nil,
	)
	return e
}

func doForm(e *echo.Echo, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func hopValues() url.Values {
	return url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae", "Swing"},
		"image_link":          {"https://example.com/hop.jpg"},
		"facebook_link":       {"https://facebook.com/themusicalhop"},
		"website_link":        {"https://themusicalhop.com"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

func createVenue(t *testing.T, e *echo.Echo) int64 {
	t.Helper()
	rec := doForm(e, http.MethodPost, "/venues/create", hopValues())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	venue := body["venue"].(map[string]any)
	return int64(venue["id"].(float64))
}

func createArtist(t *testing.T, e *echo.Echo) int64 {
	t.Helper()
	rec := doForm(e, http.MethodPost, "/artists/create", url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	artist := body["artist"].(map[string]any)
	return int64(artist["id"].(float64))
}

func TestHealthz(t *testing.T) {
	e := newTestApp(t)
	rec := doGet(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestVenueCreateAndList(t *testing.T) {
	e := newTestApp(t)

	rec := doForm(e, http.MethodPost, "/venues/create", hopValues())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", body["message"])
	venue := body["venue"].(map[string]any)
	assert.Equal(t, "The Musical Hop", venue["name"])
	assert.Equal(t, true, venue["seeking_talent"], "checkbox value y decodes to true")

	rec = doGet(e, "/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "The Musical Hop", first["name"])
	assert.EqualValues(t, 0, first["num_upcoming_shows"])
}

func TestVenueCreateValidation(t *testing.T) {
	e := newTestApp(t)

	// Missing name.
	rec := doForm(e, http.MethodPost, "/venues/create", url.Values{"city": {"San Francisco"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "name")

	// Broken link.
	form := hopValues()
	form.Set("image_link", "not a url")
	rec = doForm(e, http.MethodPost, "/venues/create", form)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Nothing was persisted.
	rec = doGet(e, "/venues")
	assert.Empty(t, decode(t, rec)["items"])
}

func TestVenueGet(t *testing.T) {
	e := newTestApp(t)
	id := createVenue(t, e)

	rec := doGet(e, "/venues/1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, id, body["id"])
	assert.Equal(t, []any{"Jazz", "Reggae", "Swing"}, body["genres"])
	assert.EqualValues(t, 0, body["past_shows_count"])
	assert.EqualValues(t, 0, body["upcoming_shows_count"])
	// The split lists are present and empty, not null.
	assert.Equal(t, []any{}, body["past_shows"])
	assert.Equal(t, []any{}, body["upcoming_shows"])
}

func TestVenueGetNotFound(t *testing.T) {
	e := newTestApp(t)
	rec := doGet(e, "/venues/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueGetBadID(t *testing.T) {
	e := newTestApp(t)
	for _, path := range []string{"/venues/abc", "/venues/0", "/venues/-3"} {
		rec := doGet(e, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestVenueSearch(t *testing.T) {
	e := newTestApp(t)
	createVenue(t, e)
	park := hopValues()
	park.Set("name", "Park Square Live Music & Coffee")
	rec := doForm(e, http.MethodPost, "/venues/create", park)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doForm(e, http.MethodPost, "/venues/search", url.Values{"search_term": {"HOP"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "HOP", body["search_term"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "The Musical Hop", data[0].(map[string]any)["name"])

	rec = doForm(e, http.MethodPost, "/venues/search", url.Values{"search_term": {"music"}})
	assert.EqualValues(t, 2, decode(t, rec)["count"])
}

func TestVenueEdit(t *testing.T) {
	e := newTestApp(t)
	createVenue(t, e)

	// The edit form is pre-filled with the stored values.
	rec := doGet(e, "/venues/1/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	form := decode(t, rec)["form"].(map[string]any)
	assert.Equal(t, "The Musical Hop", form["name"])

	// A full-record overwrite: the unchecked box and emptied description
	// come back cleared.
	update := hopValues()
	update.Set("name", "The Dueling Pianos Bar")
	update.Del("seeking_talent")
	update.Set("seeking_description", "")
	rec = doForm(e, http.MethodPost, "/venues/1/edit", update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Venue The Dueling Pianos Bar was successfully edited", decode(t, rec)["message"])

	rec = doGet(e, "/venues/1")
	body := decode(t, rec)
	assert.Equal(t, "The Dueling Pianos Bar", body["name"])
	assert.Equal(t, false, body["seeking_talent"])
	assert.Equal(t, "", body["seeking_description"])
}

func TestVenueEditNotFound(t *testing.T) {
	e := newTestApp(t)
	rec := doForm(e, http.MethodPost, "/venues/9/edit", hopValues())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueDelete(t *testing.T) {
	e := newTestApp(t)
	createVenue(t, e)
	createArtist(t, e)

	rec := doForm(e, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {"1"},
		"artist_id":  {"1"},
		"start_time": {"2035-04-01 20:00:00"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Venue The Musical Hop was successfully deleted!", decode(t, rec)["message"])

	// The venue and its show are both gone.
	assert.Equal(t, http.StatusNotFound, doGet(e, "/venues/1").Code)
	shows := decode(t, doGet(e, "/shows"))
	assert.Empty(t, shows["upcoming_shows"])
	assert.Empty(t, shows["past_shows"])

	// Deleting again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArtistCreateAndSearch(t *testing.T) {
	e := newTestApp(t)
	createArtist(t, e)

	rec := doForm(e, http.MethodPost, "/artists/search", url.Values{"search_term": {"petals"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])

	rec = doForm(e, http.MethodPost, "/artists/search", url.Values{"search_term": {"zeppelin"}})
	body = decode(t, rec)
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, []any{}, body["data"], "no-match data is an empty list, not null")
}

func TestArtistDelete(t *testing.T) {
	e := newTestApp(t)
	createArtist(t, e)

	req := httptest.NewRequest(http.MethodDelete, "/artists/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Artist Guns N Petals was successfully deleted!", decode(t, rec)["message"])
	assert.Equal(t, http.StatusNotFound, doGet(e, "/artists/1").Code)
}

func TestShowCreateAndList(t *testing.T) {
	e := newTestApp(t)
	createVenue(t, e)
	createArtist(t, e)

	rec := doForm(e, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {"1"},
		"artist_id":  {"1"},
		"start_time": {"2035-04-01T20:00:00Z"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Show was successfully listed!", decode(t, rec)["message"])

	rec = doGet(e, "/shows")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	upcoming := body["upcoming_shows"].([]any)
	require.Len(t, upcoming, 1)
	first := upcoming[0].(map[string]any)
	assert.Equal(t, "The Musical Hop", first["venue_name"])
	assert.Equal(t, "Guns N Petals", first["artist_name"])

	// The booked show counts toward the venue's upcoming total.
	rec = doGet(e, "/venues/1")
	assert.EqualValues(t, 1, decode(t, rec)["upcoming_shows_count"])
}

func TestShowCreateDanglingVenue(t *testing.T) {
	e := newTestApp(t)
	createArtist(t, e)

	rec := doForm(e, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {"99"},
		"artist_id":  {"1"},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "venue")
}

func TestShowCreateBadStartTime(t *testing.T) {
	e := newTestApp(t)
	createVenue(t, e)
	createArtist(t, e)

	rec := doForm(e, http.MethodPost, "/shows/create", url.Values{
		"venue_id":   {"1"},
		"artist_id":  {"1"},
		"start_time": {"next tuesday"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
