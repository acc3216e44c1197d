package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	api "github.com/ranjanashish/leh-registry/internal/http"
	"github.com/ranjanashish/leh-registry/internal/rate"
	"github.com/ranjanashish/leh-registry/internal/service"
	"github.com/ranjanashish/leh-registry/internal/store/memory"
)

func newTestServer(t *testing.T, limiters *rate.Pool) (*httptest.Server, *memory.Store) {
	t.Helper()
	st := memory.New()
	handler := api.NewRouter(api.RouterConfig{
		Users:              api.NewUsersController(service.NewUsers(st)),
		Records:            api.NewRecordsController(service.NewRecords(st)),
		Store:              st,
		Limiters:           limiters,
		CORSAllowedOrigins: []string{"*"},
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url string, body any) (*stdhttp.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := stdhttp.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := stdhttp.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func addUser(t *testing.T, base, email string) {
	t.Helper()
	resp, body := doJSON(t, "POST", base+"/add-user", map[string]string{
		"name": "Ravi Kumar", "email": email, "phone": "9876543210",
		"department": "Operations", "password": "secret1",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
}

func TestRoutes_LoginFlow(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	addUser(t, srv.URL, "ravi@example.com")

	resp, body := doJSON(t, "POST", srv.URL+"/login", map[string]string{
		"email": "ravi@example.com", "password": "secret1",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ravi Kumar", user["name"])
	assert.Equal(t, "user", user["role"])

	resp, body = doJSON(t, "POST", srv.URL+"/login", map[string]string{
		"email": "ravi@example.com", "password": "wrong",
	})
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestRoutes_AddUserValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := doJSON(t, "POST", srv.URL+"/add-user", map[string]string{
		"name": "Sin Email", "phone": "123", "department": "Ops", "password": "x",
	})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are required", body["message"])

	addUser(t, srv.URL, "dup@example.com")
	resp, body = doJSON(t, "POST", srv.URL+"/add-user", map[string]string{
		"name": "Otro", "email": "dup@example.com", "phone": "123",
		"department": "Ops", "password": "x",
	})
	assert.Equal(t, stdhttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["message"])
}

func TestRoutes_EditAndDeleteUser(t *testing.T) {
	srv, st := newTestServer(t, nil)
	addUser(t, srv.URL, "edit@example.com")

	users, err := st.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	resp, body := doJSON(t, "PUT", srv.URL+"/edit-user/"+id, map[string]string{
		"name": "Editado", "email": "edit@example.com",
		"phone": "000", "department": "Safety",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, "PUT", srv.URL+"/edit-user/missing", map[string]string{})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = doJSON(t, "DELETE", srv.URL+"/delete-user/"+id, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// segundo delete: el contrato responde 200 con success=false
	resp, body = doJSON(t, "DELETE", srv.URL+"/delete-user/"+id, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User not found", body["message"])
}

func TestRoutes_DeleteAdminProtected(t *testing.T) {
	srv, st := newTestServer(t, nil)

	adminID, err := st.InsertUser(context.Background(), repository.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     repository.RoleAdmin,
	})
	require.NoError(t, err)

	resp, body := doJSON(t, "DELETE", srv.URL+"/delete-user/"+adminID, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot delete admin user", body["message"])
}

func TestRoutes_LehDataCRUD(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := doJSON(t, "POST", srv.URL+"/leh-data", map[string]any{
		"location": "Gate-3", "agency": "PESO", "quantity": "7",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "LEH data submitted", body["message"])

	resp, body = doJSON(t, "POST", srv.URL+"/leh-data", map[string]any{
		"description": "sin location",
	})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Location is required", body["message"])

	// listar y recuperar el id
	req, _ := stdhttp.NewRequest("GET", srv.URL+"/leh-data", nil)
	listResp, err := stdhttp.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	var records []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "Gate-3", records[0]["location"])
	assert.Equal(t, "N/A", records[0]["description"])
	assert.Equal(t, float64(7), records[0]["quantity"])
	id := records[0]["id"].(string)

	resp, body = doJSON(t, "GET", srv.URL+"/leh-data/id/"+id, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Gate-3", body["location"])

	resp, body = doJSON(t, "PUT", srv.URL+"/leh-data/id/"+id, map[string]any{
		"location": "Gate-5",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, "PUT", srv.URL+"/leh-data/id/"+id, map[string]any{
		"location": "  ",
	})
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Location is required", body["message"])

	resp, body = doJSON(t, "DELETE", srv.URL+"/leh-data/id/"+id, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, "GET", srv.URL+"/leh-data/id/"+id, nil)
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["message"])
}

func TestRoutes_LehDataByLocation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, loc := range []string{"Gate-1", "Gate-2", "Gate-1"} {
		resp, _ := doJSON(t, "POST", srv.URL+"/leh-data", map[string]any{"location": loc})
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	}

	req, _ := stdhttp.NewRequest("GET", srv.URL+"/leh-data/location/Gate-1", nil)
	resp, err := stdhttp.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Len(t, records, 2)

	req, _ = stdhttp.NewRequest("GET", srv.URL+"/leh-data/location/Gate-9", nil)
	resp, err = stdhttp.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	records = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Empty(t, records)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req, _ := stdhttp.NewRequest("OPTIONS", srv.URL+"/login", nil)
	req.Header.Set("Origin", "https://app.example")
	resp, err := stdhttp.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
}

func TestRoutes_LoginRateLimited(t *testing.T) {
	limiters := &rate.Pool{
		Login: rate.NewMemoryLimiter(2, time.Minute),
	}
	srv, _ := newTestServer(t, limiters)
	addUser(t, srv.URL, "rl@example.com")

	creds := map[string]string{"email": "rl@example.com", "password": "secret1"}
	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, "POST", srv.URL+"/login", creds)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, "POST", srv.URL+"/login", creds)
	assert.Equal(t, stdhttp.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// el resto de la API no queda limitada
	resp, _ = doJSON(t, "GET", srv.URL+"/users", nil)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestRoutes_Health(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := stdhttp.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, stdhttp.StatusOK, resp.StatusCode, path)
	}
}
