package thrustcurve

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIStub(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientManufacturers(t *testing.T) {
	srv := newAPIStub(t, map[string]http.HandlerFunc{
		"/metadata.json": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "OpenRocket-Updater/1.0", r.Header.Get("User-Agent"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "all", payload["availability"])

			json.NewEncoder(w).Encode(map[string]any{
				"manufacturers": []Manufacturer{
					{Name: "AeroTech", Abbrev: "AeroTech"},
					{Name: "Estes Industries", Abbrev: "Estes"},
				},
			})
		},
	})

	c := NewClient(srv.URL)
	mfrs, err := c.Manufacturers(context.Background())
	require.NoError(t, err)
	require.Len(t, mfrs, 2)
	assert.Equal(t, "AeroTech", mfrs[0].Name)
}

func TestClientSearch(t *testing.T) {
	srv := newAPIStub(t, map[string]http.HandlerFunc{
		"/search.json": func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "AeroTech", payload["manufacturer"])

			json.NewEncoder(w).Encode(map[string]any{
				"results": []MotorMetadata{{
					MotorID:     "5f4294d20002310000000001",
					Designation: "F32T",
					CommonName:  "F32",
					UpdatedOn:   "2021-03-01",
				}},
			})
		},
	})

	c := NewClient(srv.URL)
	motors, err := c.Search(context.Background(), "AeroTech")
	require.NoError(t, err)
	require.Len(t, motors, 1)
	assert.Equal(t, "F32T", motors[0].Designation)
}

func TestClientDownloadAndDecode(t *testing.T) {
	raw := "AeroTech F32 ;\n24 124 5-10-15 0.0377 0.0695 AT\n"
	srv := newAPIStub(t, map[string]http.HandlerFunc{
		"/download.json": func(w http.ResponseWriter, r *http.Request) {
			var payload struct {
				MotorIDs []string `json:"motorIds"`
				Format   string   `json:"format"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, []string{"5f4294d20002310000000001"}, payload.MotorIDs)
			assert.Equal(t, "RASP", payload.Format)

			json.NewEncoder(w).Encode(map[string]any{
				"results": []DownloadResult{{
					SimfileID: "5f4294d20002e90000000042",
					Format:    "RASP",
					Source:    "cert",
					License:   "PD",
					Data:      base64.StdEncoding.EncodeToString([]byte(raw)),
				}},
			})
		},
	})

	c := NewClient(srv.URL)
	results, err := c.Download(context.Background(), "5f4294d20002310000000001", "RASP")
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := DecodePayload(results[0])
	require.NoError(t, err)
	assert.Equal(t, raw, string(data))
}

func TestClientNonOKStatus(t *testing.T) {
	srv := newAPIStub(t, map[string]http.HandlerFunc{
		"/search.json": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	})

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), "AeroTech")
	assert.ErrorContains(t, err, "status 503")
}
