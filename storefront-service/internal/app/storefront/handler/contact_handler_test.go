package handler

import (
	"net/http"
	"strings"
	"testing"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/repository/mocks"
	"hamperhouse/storefront-service/internal/app/storefront/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContactHandler(t *testing.T) (*ContactHandler, *mocks.MockCatalogAPI, *mocks.MockMessagePublisher) {
	t.Helper()
	api := new(mocks.MockCatalogAPI)
	publisher := new(mocks.MockMessagePublisher)
	contactService, err := service.NewContactService(api, publisher)
	require.NoError(t, err)
	return NewContactHandler(contactService), api, publisher
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestContactHandler_Submit_Success(t *testing.T) {
	// Arrange
	handler, api, publisher := newTestContactHandler(t)
	api.On("CreateSubmission", mock.Anything, mock.MatchedBy(func(req entity.SubmissionRequest) bool {
		return req.FirstName == "Anna" && req.Email == "anna@example.com"
	})).Return(nil)
	publisher.On("PublishMessage", mock.Anything, "submission", mock.Anything).Return(nil)
	router := setupTestRouter(http.MethodPost, "/api/contact", handler.Submit)

	body := `{"firstName":" Anna ","lastName":"Smith","email":"anna@example.com",` +
		`"phone":"+44 (20) 7946-0958","message":"I would like a custom hamper."}`

	// Act
	w := perform(router, http.MethodPost, "/api/contact", strings.NewReader(body), jsonHeaders)

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[entity.ContactResponse](t, w)
	assert.Equal(t, service.ContactConfirmation, resp.Message)
	assert.Equal(t, service.ContactResetSeconds, resp.ResetAfterSeconds)
	api.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestContactHandler_Submit_ValidationErrors(t *testing.T) {
	// Arrange
	handler, api, _ := newTestContactHandler(t)
	router := setupTestRouter(http.MethodPost, "/api/contact", handler.Submit)

	body := `{"firstName":"A","lastName":"Smith","email":"not-an-email","phone":"12","message":"short"}`

	// Act
	w := perform(router, http.MethodPost, "/api/contact", strings.NewReader(body), jsonHeaders)

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.Contains(t, resp.Fields, "firstName")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "phone")
	assert.Contains(t, resp.Fields, "message")
	assert.NotContains(t, resp.Fields, "lastName")
	api.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
}

func TestContactHandler_Submit_UpstreamFailure(t *testing.T) {
	// Arrange
	handler, api, publisher := newTestContactHandler(t)
	api.On("CreateSubmission", mock.Anything, mock.Anything).Return(errUpstream)
	router := setupTestRouter(http.MethodPost, "/api/contact", handler.Submit)

	body := `{"firstName":"Anna","lastName":"Smith","email":"anna@example.com",` +
		`"phone":"+442079460958","message":"I would like a custom hamper."}`

	// Act
	w := perform(router, http.MethodPost, "/api/contact", strings.NewReader(body), jsonHeaders)

	// Assert
	assert.Equal(t, http.StatusBadGateway, w.Code)
	publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactHandler_Submit_MalformedJSON(t *testing.T) {
	// Arrange
	handler, _, _ := newTestContactHandler(t)
	router := setupTestRouter(http.MethodPost, "/api/contact", handler.Submit)

	// Act
	w := perform(router, http.MethodPost, "/api/contact", strings.NewReader(`{"firstName":`), jsonHeaders)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
