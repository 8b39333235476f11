package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"carebase/internal/integration/store/memory"
	"carebase/internal/platform/logger"
	"carebase/internal/shared/envelope"
	"carebase/pkg/testutil"
)

const testSecret = "a-very-long-shared-secret"

type IntegrationHandlerSuite struct {
	suite.Suite
	store  *memory.Store
	router chi.Router
}

func (s *IntegrationHandlerSuite) SetupTest() {
	s.store = memory.NewStore()
	handler := New(s.store, nil, logger.New())
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func TestIntegrationHandlerSuite(t *testing.T) {
	suite.Run(t, new(IntegrationHandlerSuite))
}

func (s *IntegrationHandlerSuite) createEndpoint(dateFields ...string) *EndpointResponse {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints", CreateEndpointRequest{
		Name:       "regional-lab",
		URL:        "https://lab.example.org/fhir",
		Kind:       "fhir",
		Secret:     testSecret,
		DateFields: dateFields,
	})
	rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[envelope.Response[*EndpointResponse]](s.T(), rr).Data
}

func (s *IntegrationHandlerSuite) TestCreate() {
	s.Run("registers an active endpoint without echoing the secret", func() {
		created := s.createEndpoint()
		s.True(created.Active)

		rr := testutil.DoRequest(s.router, testutil.WithOrg(
			testutil.NewRequest(s.T(), http.MethodGet, "/endpoints/"+created.ID), "clinic-east"))
		testutil.AssertStatusOK(s.T(), rr)
		s.NotContains(rr.Body.String(), testSecret)
	})

	s.Run("rejects a short secret", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints", CreateEndpointRequest{
			Name: "x", URL: "https://x.example", Kind: "hl7", Secret: "short",
		})
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_failed")
	})
}

func (s *IntegrationHandlerSuite) ingest(endpointID, secret string, body any) *envelope.Response[[]map[string]any] {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints/"+endpointID+"/documents", body)
	if secret != "" {
		req.Header.Set(SecretHeader, secret)
	}
	rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
	testutil.AssertStatusOK(s.T(), rr)
	return testutil.UnmarshalResponse[envelope.Response[[]map[string]any]](s.T(), rr)
}

func (s *IntegrationHandlerSuite) TestIngestDocuments() {
	created := s.createEndpoint("observedAt", "resultedAt")

	s.Run("normalizes configured date fields", func() {
		resp := s.ingest(created.ID, testSecret, IngestDocumentsRequest{
			Documents: []map[string]any{
				{
					"observedAt": "2026-03-14T09:30:45.123456789+01:00",
					"resultedAt": "2026-03-14",
					"note":       "not a date",
				},
			},
		})

		s.Require().Len(resp.Data, 1)
		doc := resp.Data[0]
		s.Equal("2026-03-14T08:30:45.123Z", doc["observedAt"])
		s.Equal("2026-03-14T00:00:00.000Z", doc["resultedAt"])
		s.Equal("not a date", doc["note"])

		s.Require().NotNil(resp.Meta)
		s.Regexp(`^INT-`, resp.Meta.CorrelationID)
		s.Require().NotNil(resp.Meta.Pagination)
		s.Equal(1, resp.Meta.Pagination.Limit)
	})

	s.Run("rejects a wrong secret", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints/"+created.ID+"/documents",
			IngestDocumentsRequest{Documents: []map[string]any{{"a": 1}}})
		req.Header.Set(SecretHeader, "wrong-secret-entirely")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("rejects an empty batch", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints/"+created.ID+"/documents",
			IngestDocumentsRequest{})
		req.Header.Set(SecretHeader, testSecret)
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_failed")
	})

	s.Run("rejects an inactive endpoint", func() {
		inactive := false
		patch := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/endpoints/"+created.ID,
			UpdateEndpointRequest{Active: &inactive})
		rr := testutil.DoRequest(s.router, testutil.WithOrg(patch, "clinic-east"))
		testutil.AssertStatusOK(s.T(), rr)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/endpoints/"+created.ID+"/documents",
			IngestDocumentsRequest{Documents: []map[string]any{{"a": 1}}})
		req.Header.Set(SecretHeader, testSecret)
		rr = testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}
