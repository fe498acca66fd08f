package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/report-designer/pkg/models/api"
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionController struct {
	mock.Mock
}

func (m *mockSessionController) Submit(ctx context.Context, session string, req domain.ReportRequest) (*store.Document, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Document), args.Error(1)
}

func (m *mockSessionController) Cancel(ctx context.Context, session string) error {
	return m.Called(ctx, session).Error(0)
}

type mockDocumentStore struct {
	mock.Mock
}

func (m *mockDocumentStore) Save(ctx context.Context, doc *store.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockDocumentStore) Get(ctx context.Context, id string) (*store.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Document), args.Error(1)
}

func (m *mockDocumentStore) Latest(ctx context.Context, session string) (*store.Document, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Document), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	sessions := new(mockSessionController)
	documents := new(mockDocumentStore)

	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Sessions:  sessions,
			Documents: documents,
			Logger:    logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	createdAt := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	doc := &store.Document{
		ID:        "doc-1",
		Session:   "s1",
		Dataset:   "Products",
		Request:   []byte(`{}`),
		Body:      []byte(`{"Width":"7.5in"}`),
		CreatedAt: createdAt,
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListDatasets",
			method:         http.MethodGet,
			path:           "/api/v1/datasets",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected:       []string{"Products", "Customers"},
			parseResponse: func(data []byte) (interface{}, error) {
				var datasets []api.Dataset
				err := json.Unmarshal(data, &datasets)
				names := make([]string, 0, len(datasets))
				for _, ds := range datasets {
					names = append(names, ds.Name)
				}
				return names, err
			},
		},
		{
			name:           "GetForm",
			method:         http.MethodGet,
			path:           "/api/v1/datasets/Customers/form",
			setupMocks:     func() {},
			expectedStatus: http.StatusOK,
			expected:       []string{"USA", "UK", "Germany", "France", "Canada"},
			parseResponse: func(data []byte) (interface{}, error) {
				var form api.FormState
				err := json.Unmarshal(data, &form)
				return form.AvailableFilterValues, err
			},
		},
		{
			name:   "SubmitReport",
			method: http.MethodPost,
			path:   "/api/v1/reports",
			body:   `{"dataSetName":"Products","fields":["ProductName","UnitPrice"],"sortBy":"UnitPrice"}`,
			setupMocks: func() {
				sessions.On("Submit", mock.Anything, "s1", domain.ReportRequest{
					Dataset: domain.DatasetProducts,
					Fields:  []string{"ProductName", "UnitPrice"},
					SortBy:  "UnitPrice",
				}).Return(doc, nil)
			},
			expectedStatus: http.StatusCreated,
			expected:       "doc-1",
			parseResponse:  documentID,
		},
		{
			name:   "GetReport",
			method: http.MethodGet,
			path:   "/api/v1/reports/doc-1",
			setupMocks: func() {
				documents.On("Get", mock.Anything, "doc-1").Return(doc, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "doc-1",
			parseResponse:  documentID,
		},
		{
			name:   "GetReportDefinition",
			method: http.MethodGet,
			path:   "/api/v1/reports/doc-1/definition",
			setupMocks: func() {
				documents.On("Get", mock.Anything, "doc-1").Return(doc, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "7.5in",
			parseResponse: func(data []byte) (interface{}, error) {
				var definition map[string]any
				err := json.Unmarshal(data, &definition)
				return definition["Width"], err
			},
		},
		{
			name:   "GetLatestReport",
			method: http.MethodGet,
			path:   "/api/v1/sessions/s1/report",
			setupMocks: func() {
				documents.On("Latest", mock.Anything, "s1").Return(doc, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       "doc-1",
			parseResponse:  documentID,
		},
		{
			name:   "CancelBuild",
			method: http.MethodDelete,
			path:   "/api/v1/sessions/s1/build",
			setupMocks: func() {
				sessions.On("Cancel", mock.Anything, "s1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "UnknownRoute",
			method:         http.MethodGet,
			path:           "/api/v1/unknown",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotFound,
			expected:       "404 page not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			req.Header.Set("X-Session-ID", "s1")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	sessions.AssertExpectations(t)
	documents.AssertExpectations(t)
}

func TestWebAPI_StartStopsWithContext(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	webAPI := NewWebAPI(Config{
		Addr:            addr,
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Sessions:  new(mockSessionController),
			Documents: new(mockDocumentStore),
			Logger:    zerolog.Nop(),
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- webAPI.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/datasets")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = http.Get("http://" + addr + "/api/v1/datasets")
	assert.Error(t, err)
}

func documentID(data []byte) (interface{}, error) {
	var doc api.ReportDocument
	err := json.Unmarshal(data, &doc)
	return doc.ID, err
}
