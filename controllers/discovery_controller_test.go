package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"songswipe_server/models"
	"songswipe_server/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCandidateProvider struct {
	candidates []services.Candidate
	err        error
	gotViewer  string
}

func (s *stubCandidateProvider) CandidatesFor(_ context.Context, viewerID string) ([]services.Candidate, error) {
	s.gotViewer = viewerID
	return s.candidates, s.err
}

func getCandidates(t *testing.T, c *DiscoveryController, userID string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/discovery/{userId}", c.HandleGetCandidates).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/discovery/"+userID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetCandidates(t *testing.T) {
	stub := &stubCandidateProvider{candidates: []services.Candidate{
		{Post: models.Post{PostID: "p1", AuthorID: "bob"}, Score: 0.8},
	}}
	rec := getCandidates(t, NewDiscoveryController(stub), "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", stub.gotViewer)

	var payload struct {
		Candidates []services.Candidate `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.Len(t, payload.Candidates, 1)
	assert.Equal(t, "p1", payload.Candidates[0].Post.PostID)
}

func TestHandleGetCandidatesEmptyPoolIsNotNull(t *testing.T) {
	rec := getCandidates(t, NewDiscoveryController(&stubCandidateProvider{}), "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"candidates":[]}`, rec.Body.String())
}

func TestHandleGetCandidatesUnknownViewer(t *testing.T) {
	rec := getCandidates(t, NewDiscoveryController(&stubCandidateProvider{err: services.ErrNotFound}), "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
