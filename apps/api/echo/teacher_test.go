package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educamais/educamais/core/teacher"
	testutil "github.com/educamais/educamais/tests"
)

func Test_teacherAPI_register(t *testing.T) {
	app := setup(t)
	testutil.CreateTeacher(t, app.db, "Bia", "bia@escola.com", "segredo123")

	body := func(name, email, pwd string) []byte {
		return marshallObj(t, map[string]string{"name": name, "email": email, "password": pwd})
	}
	path := "/v1/teachers/register"

	app.run(t, []httpTest{
		{name: "empty body", method: http.MethodPost, path: path, body: []byte("{}"), wantCode: http.StatusBadRequest, wantFields: []string{"name", "email", "password"}},
		{name: "bad json", method: http.MethodPost, path: path, body: []byte("{"), wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "unexpected EOF"})},
		{name: "short password", method: http.MethodPost, path: path, body: body("Ana", "ana@escola.com", "123"), wantCode: http.StatusBadRequest, wantFields: []string{"password"}},
		{name: "email exists", method: http.MethodPost, path: path, body: body("Bia", "bia@escola.com", "segredo123"), wantCode: http.StatusBadRequest, wantFields: []string{"email"}},
		{
			name: "ok", method: http.MethodPost, path: path + "/", body: body("Ana", "ana@escola.com", "segredo123"),
			wantCode: http.StatusCreated, wantData: marshallObj(t, teacher.Teacher{ID: 2, Name: "Ana", Email: "ana@escola.com"}),
		},
	})
	assert.Len(t, app.mailSvc.SentMessages(), 1)
}

func Test_teacherAPI_login(t *testing.T) {
	app := setup(t)
	ana := testutil.CreateTeacher(t, app.db, "Ana", "ana@escola.com", "segredo123")
	path := "/v1/teachers/login"
	invalid := marshallObj(t, httpErr{Error: teacher.ErrInvalidCredentials.Error()})

	app.run(t, []httpTest{
		{name: "missing fields", method: http.MethodPost, path: path, body: []byte("{}"), wantCode: http.StatusBadRequest, wantFields: []string{"email", "password"}},
		{
			name: "unknown email", method: http.MethodPost, path: path,
			body:     marshallObj(t, teacher.Credentials{Email: "lol@escola.com", Password: "segredo123"}),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "wrong password", method: http.MethodPost, path: path,
			body:     marshallObj(t, teacher.Credentials{Email: "ana@escola.com", Password: "errada"}),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, "", marshallObj(t, teacher.Credentials{Email: "ANA@escola.com", Password: "segredo123"}))
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, ana.ID, resp.Teacher.ID)

		// the token opens the authed endpoints
		req, rec = newAuthRequest(http.MethodGet, "/v1/teachers/me", resp.Token)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_teacherAPI_me(t *testing.T) {
	app := setup(t)
	ana := testutil.CreateTeacher(t, app.db, "Ana", "ana@escola.com", "segredo123")
	ghost := teacher.Teacher{ID: 42, Name: "Ghost"}
	path := "/v1/teachers/me"

	app.run(t, []httpTest{
		{name: "auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingTokenBody)},
		{name: "bad token", path: path, token: "lol", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: "token inválido ou expirado"})},
		{name: "deleted teacher", path: path, token: app.token(t, ghost), wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: "sessão expirada: faça login novamente"})},
		{name: "ok", path: path, token: app.token(t, ana), wantCode: http.StatusOK, wantData: marshallObj(t, teacher.Teacher{ID: ana.ID, Name: "Ana", Email: "ana@escola.com"})},
	})
}

func Test_teacherAPI_tokenRefresh(t *testing.T) {
	app := setup(t)
	ana := testutil.CreateTeacher(t, app.db, "Ana", "ana@escola.com", "segredo123")
	path := "/v1/teachers/token-refresh"

	auth := app.server.Auth()
	stale, err := auth.GenerateToken(auth.Claims(ana, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)

	app.run(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: path, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingTokenBody)},
		{
			name: "refresh expired", method: http.MethodPost, path: path, token: stale,
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "renovação expirada: faça login novamente"}),
		},
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, app.token(t, ana))
		app.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.NotEmpty(t, res.Token)

		req, rec = newAuthRequest(http.MethodGet, "/v1/teachers/me", res.Token)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_home(t *testing.T) {
	app := setup(t)
	req, rec := newAuthRequest(http.MethodGet, "/", "")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bem-vindo(a) à API EducaMais!", rec.Body.String())
}
