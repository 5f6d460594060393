package biz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmailReturnsRevealedEmail(t *testing.T) {
	var gotAPIKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/people/match", r.URL.Path)
		gotAPIKey = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Write([]byte(`{"person": {"email": "jane@acme.com", "name": "Jane Doe"}}`))
	}))
	defer srv.Close()

	client := NewApolloClient("secret-key", srv.URL)
	email, err := client.MatchEmail(context.Background(), &Person{
		FirstName:   "Jane",
		LastName:    "Doe",
		LinkedinURL: "https://linkedin.com/in/janedoe",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@acme.com", email)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, true, gotBody["reveal_personal_emails"])
	assert.Equal(t, "Jane", gotBody["first_name"])
}

func TestMatchEmailNoEmailFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"person": {"name": "Jane Doe", "email": null}}`))
	}))
	defer srv.Close()

	client := NewApolloClient("key", srv.URL)
	_, err := client.MatchEmail(context.Background(), &Person{FirstName: "Jane", LastName: "Doe"})
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestMatchEmailUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "insufficient credits"}`))
	}))
	defer srv.Close()

	client := NewApolloClient("key", srv.URL)
	_, err := client.MatchEmail(context.Background(), &Person{FirstName: "Jane", LastName: "Doe"})

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnprocessableEntity, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "insufficient credits")
}
