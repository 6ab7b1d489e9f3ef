package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/gradebook/apps/api/echo"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/college"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/core/template"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server      *Server
	conf        *core.Config
	periodRepo  grading.Repository
	templateSvc *template.Service
}

func setup(t *testing.T) testApp {
	conf := &core.Config{
		AppName:   "Gradebook",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
			DisableReqLogs:     true,
		},
	}

	logger := logsvc.NewRollbarLogger(ioutil.Discard, "API", conf)
	logger.Enable(false)

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	periodRepo := dummydb.NewGradingPeriodRepository(db)

	// set up services
	gradingSvc := grading.NewService(periodRepo)
	settingsSvc := settings.NewService(dummydb.NewSettingsRepository(db), gradingSvc)
	templateSvc := template.NewService(dummydb.NewTemplateRepository(db))
	colleges := college.NewDirectory([]string{"Harvard University", "Stanford University", "Yale University"})

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	settings.InitValidators(validate, translator)

	// set up server
	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		GradingSvc:  gradingSvc,
		SettingsSvc: settingsSvc,
		TemplateSvc: templateSvc,
		Colleges:    colleges,
		Validate:    validate,
		Translator:  translator,
	})
	return testApp{server: server, conf: conf, periodRepo: periodRepo, templateSvc: templateSvc}
}

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
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do sends the request through the server and returns the recorded response.
func (app testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, app testApp, userID string) string {
	token, err := GenerateToken(NewClaims(userID, userID+"@test.edu", app.conf), app.conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchall(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarchall(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
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

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
