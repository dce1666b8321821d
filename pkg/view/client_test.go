package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/advocates", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"firstName":"John","lastName":"Doe","city":"New York","degree":"MD","specialties":["Cardiology"],"yearsOfExperience":10,"phoneNumber":2125551234,"createdAt":null}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", nil)
	got, err := client.Fetch(context.Background(), "(212) 555-1234")
	require.NoError(t, err)

	assert.Equal(t, "(212) 555-1234", gotQuery)
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].FirstName)
	assert.Equal(t, int64(2125551234), got[0].PhoneNumber)
}

func TestClient_FetchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"failed to fetch advocates"}`))
			},
			errMsg: "unexpected status 500",
		},
		{
			name: "bad body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			errMsg: "failed to decode advocates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Fetch(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClient_FetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, nil).Fetch(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
