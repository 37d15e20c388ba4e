package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresServerAssignedFields(t *testing.T) {
	goBody := []byte(`{"id":"7b1d","name":"Ann","cohort":"AY 2024-25","courses":["CBSE 9 Hindi"],"dateJoined":"2024-06-01T00:00:00Z","lastLogin":null}`)
	legacyBody := []byte(`{"id":12,"name":"Ann","cohort":"AY 2024-25","courses":["CBSE 9 Hindi"],"dateJoined":"2024-06-01T10:11:12.000Z"}`)

	assert.False(t, bodiesEqual(goBody, legacyBody, nil, false))
	assert.True(t, bodiesEqual(goBody, legacyBody, []string{"id", "dateJoined", "lastLogin"}, false))
}

func TestBodiesEqualUnordered(t *testing.T) {
	a := []byte(`[{"name":"Ann"},{"name":"Ravi"}]`)
	b := []byte(`[{"name":"Ravi"},{"name":"Ann"}]`)

	assert.False(t, bodiesEqual(a, b, nil, false))
	assert.True(t, bodiesEqual(a, b, nil, true))
	assert.False(t, bodiesEqual(a, []byte(`not json`), nil, true))
}

func TestLoadTargets(t *testing.T) {
	targets, err := loadTargets("targets.json")
	require.NoError(t, err)
	require.NotEmpty(t, targets)
	assert.JSONEq(t, `{"name":"Shadow Student","cohort":"AY 2024-25","courses":["CBSE 9 English"]}`, string(targets[len(targets)-1].Body))

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(empty)
	assert.Error(t, err)
}

func TestCompareTargetPostsBody(t *testing.T) {
	handler := func(id string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var payload map[string]interface{}
			_ = json.Unmarshal(body, &payload)
			payload["id"] = id
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(payload)
		}
	}
	goSrv := httptest.NewServer(handler("uuid"))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(handler("42"))
	defer legacySrv.Close()

	tgt := target{Method: "post", Path: "create", Body: json.RawMessage(`{"name":"Ann"}`), Critical: true, Ignore: []string{"id"}}
	comp := compareTarget(&http.Client{Timeout: time.Second}, goSrv.URL, legacySrv.URL, tgt)

	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
	assert.Equal(t, http.StatusCreated, comp.GoStatus)

	breaking, optional := tally([]comparison{comp, {Target: target{Critical: false}, StatusMatch: false}})
	assert.Equal(t, 0, breaking)
	assert.Equal(t, 1, optional)

	var report bytes.Buffer
	printReport(&report, []comparison{comp})
	assert.Contains(t, report.String(), "[OK] post create")
}
