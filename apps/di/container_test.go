package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/educamais/educamais/apps/api/echo"
	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/class"
	"github.com/educamais/educamais/core/teacher"
)

func TestNew(t *testing.T) {
	c := New("test", core.NewTestConfig)

	err := c.Invoke(func(server *echoapi.Server, teacherSvc *teacher.Service, classSvc *class.Service, storage Storage) {
		assert.NotNil(t, teacherSvc)
		assert.NotNil(t, classSvc)
		assert.NoError(t, storage.Close())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}

func TestOpenStorage(t *testing.T) {
	conf := core.NewTestConfig()

	tests := []struct {
		name    string
		driver  string
		url     string
		wantErr bool
	}{
		{name: "memory", driver: DriverMemory},
		{name: "postgrest", driver: DriverPostgREST, url: "http://localhost:3000"},
		{name: "postgrest without url", driver: DriverPostgREST, wantErr: true},
		{name: "unknown", driver: "mongo", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *conf
			c.GatewayDriver = tt.driver
			c.PostgREST.URL = tt.url

			storage, err := OpenStorage(&c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, storage.Gateway)
			assert.NoError(t, storage.Close())
		})
	}
}
