package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/activity"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/teacher"
	emailsvc "github.com/educamais/educamais/services/email"
	logsvc "github.com/educamais/educamais/services/logger"
	inmemdb "github.com/educamais/educamais/storage/database/inmem"
	testutil "github.com/educamais/educamais/tests"
)

var errMissingTokenBody = httpErr{Error: "token ausente ou malformado"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	// wantFields lists the fields of a 400 validation response, whose messages are not compared.
	wantFields []string
}

type testApp struct {
	server  *Server
	db      *inmemdb.DB
	mailSvc *emailsvc.ConsoleServiceMock
	logs    *observer.ObservedLogs
}

func setup(t *testing.T) testApp {
	db := inmemdb.Open()
	return setupWithGateway(t, db, db)
}

// setupWithGateway serves through gw; db is where fixtures go.
func setupWithGateway(t *testing.T, db *inmemdb.DB, gw core.Gateway) testApp {
	conf := core.NewTestConfig()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	validate, translator := testutil.NewValidate()
	obsCore, logs := observer.New(zapcore.ErrorLevel)

	server := NewServer(Deps{
		Conf:        conf,
		Logger:      logsvc.NewRollbarLogger(zap.New(obsCore).Sugar(), conf),
		Translator:  translator,
		TeacherSvc:  teacher.NewService(gw, mailSvc, validate),
		ClassSvc:    class.NewService(gw, validate),
		ActivitySvc: activity.NewService(gw, validate),
	})
	return testApp{server: server, db: db, mailSvc: mailSvc, logs: logs}
}

func (app testApp) token(t *testing.T, tchr teacher.Teacher) string {
	auth := app.server.Auth()
	token, err := auth.GenerateToken(auth.Claims(tchr))
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

func (app testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	return marshallObj(t, objs)
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantFields != nil {
		var fields map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Errorf("failed! data = %v; want a field map", rec.Body.String())
			return
		}
		for _, f := range tt.wantFields {
			assert.Contains(t, fields, f)
		}
		return
	}
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
