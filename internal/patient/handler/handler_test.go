package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"carebase/internal/patient/metrics"
	"carebase/internal/patient/store/memory"
	"carebase/internal/platform/logger"
	"carebase/internal/shared/envelope"
	"carebase/pkg/testutil"
)

type PatientHandlerSuite struct {
	suite.Suite
	store  *memory.Store
	router chi.Router
}

var patientMetrics = metrics.New()

func (s *PatientHandlerSuite) SetupTest() {
	s.store = memory.NewStore()
	handler := New(s.store, nil, logger.New(), patientMetrics)
	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func TestPatientHandlerSuite(t *testing.T) {
	suite.Run(t, new(PatientHandlerSuite))
}

func (s *PatientHandlerSuite) do(req *http.Request) *envelope.Response[*PatientResponse] {
	rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
	s.Require().Less(rr.Code, 300, "unexpected error response: %s", rr.Body.String())
	return testutil.UnmarshalResponse[envelope.Response[*PatientResponse]](s.T(), rr)
}

func (s *PatientHandlerSuite) createPatient(mrn string) *PatientResponse {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/patients", CreatePatientRequest{
		MRN:        mrn,
		GivenName:  "Ada",
		FamilyName: "Lovelace",
		BirthDate:  "1815-12-10",
	})
	return s.do(req).Data
}

func (s *PatientHandlerSuite) TestCreate() {
	s.Run("returns 201 with the envelope", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/patients", CreatePatientRequest{
			MRN: "MRN-1", GivenName: "Ada", FamilyName: "Lovelace",
		})
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		resp := testutil.UnmarshalResponse[envelope.Response[*PatientResponse]](s.T(), rr)
		s.Equal("MRN-1", resp.Data.MRN)
		s.Equal("active", resp.Data.Status)
		s.Require().NotNil(resp.Meta)
		s.Regexp(`^PAT-`, resp.Meta.CorrelationID)
		s.Nil(resp.Meta.Pagination)
	})

	s.Run("returns 400 on validation failure", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/patients", CreatePatientRequest{MRN: "MRN-2"})
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_failed")
	})

	s.Run("returns 409 on duplicate MRN", func() {
		s.createPatient("MRN-3")
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/patients", CreatePatientRequest{
			MRN: "MRN-3", GivenName: "B", FamilyName: "C",
		})
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("returns 400 on malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/patients", "{not json")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *PatientHandlerSuite) TestGet() {
	created := s.createPatient("MRN-G")

	s.Run("returns the patient", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/patients/"+created.ID))
		s.Equal(created.ID, resp.Data.ID)
		s.Equal("MRN-G", resp.Data.MRN)
	})

	s.Run("returns 404 for an unknown id", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients/"+uuid.NewString())
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("returns 404 across tenants", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients/"+created.ID)
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-west"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("returns 400 for a malformed id", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients/not-a-uuid")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *PatientHandlerSuite) TestUpdate() {
	created := s.createPatient("MRN-U")

	name := "Grace"
	req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/patients/"+created.ID, UpdatePatientRequest{GivenName: &name})
	resp := s.do(req)
	s.Equal("Grace", resp.Data.GivenName)
	s.Equal("Lovelace", resp.Data.FamilyName)
}

func (s *PatientHandlerSuite) TestDelete() {
	created := s.createPatient("MRN-D")

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/patients/"+created.ID)
	rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	getReq := testutil.NewRequest(s.T(), http.MethodGet, "/patients/"+created.ID)
	rr = testutil.DoRequest(s.router, testutil.WithOrg(getReq, "clinic-east"))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

func (s *PatientHandlerSuite) TestList() {
	for i := range 10 {
		s.createPatient(fmt.Sprintf("MRN-%02d", i))
	}

	s.Run("pagination limit echoes the actual item count", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients?limit=3")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[envelope.Response[[]*PatientResponse]](s.T(), rr)
		s.Require().NotNil(resp.Meta)
		s.Require().NotNil(resp.Meta.Pagination)
		s.Len(resp.Data, 3)
		s.Equal(3, resp.Meta.Pagination.Limit)
		s.NotNil(resp.Meta.Pagination.NextCursor)
		s.Nil(resp.Meta.Pagination.PrevCursor)
	})

	s.Run("short final page echoes its own count", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients?limit=7")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		resp := testutil.UnmarshalResponse[envelope.Response[[]*PatientResponse]](s.T(), rr)
		s.Require().NotNil(resp.Meta.Pagination.NextCursor)

		req = testutil.NewRequest(s.T(), http.MethodGet, "/patients?limit=7&cursor="+*resp.Meta.Pagination.NextCursor)
		rr = testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		last := testutil.UnmarshalResponse[envelope.Response[[]*PatientResponse]](s.T(), rr)
		s.Len(last.Data, 3)
		s.Equal(3, last.Meta.Pagination.Limit)
		s.Nil(last.Meta.Pagination.NextCursor)
		s.NotNil(last.Meta.Pagination.PrevCursor)
	})

	s.Run("rejects a non-numeric limit", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/patients?limit=abc")
		rr := testutil.DoRequest(s.router, testutil.WithOrg(req, "clinic-east"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}
