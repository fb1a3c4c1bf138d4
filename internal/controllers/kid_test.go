package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/piggybank/backend/internal/models"
	"github.com/piggybank/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsKid() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/api/kids", nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
	assert.Equal(suite.T(), "GET, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), suite.router, http.MethodOptions, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
	assert.Equal(suite.T(), "GET, PATCH, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateKid() {
	_, headers := suite.signup()

	kid := suite.createTestKid(headers, "Ada", 8)

	assert.Equal(suite.T(), "Ada", kid.Name)
	assert.Equal(suite.T(), 8, kid.Age)
	assert.NotEmpty(suite.T(), kid.ID)
}

func (suite *TestSuiteStandard) TestCreateKidInvalid() {
	_, headers := suite.signup()

	tests := []struct {
		name string
		body any
	}{
		{"empty body", nil},
		{"no name", map[string]any{"age": 8}},
		{"negative age", map[string]any{"name": "Ada", "age": -1}},
		{"age too high", map[string]any{"name": "Ada", "age": 19}},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/api/kids", tt.body, headers)
		test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
	}
}

func (suite *TestSuiteStandard) TestGetKids() {
	_, headers := suite.signup()

	suite.createTestKid(headers, "Ada", 8)
	suite.createTestKid(headers, "Ben", 11)

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/api/kids", nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response struct {
		Data []models.Kid
	}
	test.DecodeResponse(suite.T(), &recorder, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), "Ada", response.Data[0].Name)
		assert.Equal(suite.T(), "Ben", response.Data[1].Name)
	}
}

func (suite *TestSuiteStandard) TestGetKidsIsolated() {
	_, headers := suite.signup()
	_, otherHeaders := suite.signup()

	suite.createTestKid(otherHeaders, "Ada", 8)

	// A guardian only sees their own kids
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/api/kids", nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response struct {
		Data []models.Kid
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestGetKid() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response struct {
		Data models.Kid
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), kid.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetKidInvalidID() {
	_, headers := suite.signup()

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/api/kids/not-a-uuid", nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestGetKidOfOtherGuardian() {
	_, headers := suite.signup()
	_, otherHeaders := suite.signup()
	kid := suite.createTestKid(otherHeaders, "Ada", 8)

	// Another guardian's kid reads as not found, not as forbidden
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestUpdateKid() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/api/kids/%s", kid.ID), map[string]any{
		"age": 9,
	}, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response struct {
		Data models.Kid
	}
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), 9, response.Data.Age)
	assert.Equal(suite.T(), "Ada", response.Data.Name, "fields not in the request must not change")
}

func (suite *TestSuiteStandard) TestUpdateKidInvalid() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch, fmt.Sprintf("/api/kids/%s", kid.ID), map[string]any{
		"age": 42,
	}, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestDeleteKid() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestDeleteKidWithTransactions() {
	_, headers := suite.signup()
	kid := suite.createTestKid(headers, "Ada", 8)

	suite.deposit(headers, kid.ID, 10)

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/api/kids/%s", kid.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &recorder)
}
