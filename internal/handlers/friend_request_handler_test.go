package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/amjadodeh/small-circles-api/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFriendRequestHandler(t *testing.T) (*FriendRequestHandler, *services.FriendRequestService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo(
		&models.User{ID: 1, Username: "User1", Hash: "x"},
		&models.User{ID: 2, Username: "User2", Hash: "x"},
		&models.User{ID: 4, Username: "User4", Hash: "x"},
	)
	svc := services.NewFriendRequestService(newStubFriendRequestRepo(users), users)
	return NewFriendRequestHandler(svc), svc, users
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func TestListFriendRequestsEmpty(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)
	c, rec := newTestContext(http.MethodGet, "/api/v1/friend-requests", "")

	require.NoError(t, h.ListFriendRequests(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateFriendRequestWireShape(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)
	c, rec := newTestContext(http.MethodPost, "/api/v1/friend-requests", `{"from":2,"to":4}`)

	require.NoError(t, h.CreateFriendRequest(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/v1/friend-requests/1", rec.Header().Get(echo.HeaderLocation))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, float64(2), body["from"])
	assert.Equal(t, float64(4), body["to"])
	assert.Equal(t, "Pending", body["status"])
}

func TestCreateFriendRequestMissingField(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)
	c, _ := newTestContext(http.MethodPost, "/api/v1/friend-requests", `{"from":2}`)

	err := h.CreateFriendRequest(c)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreateFriendRequestToSelf(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)
	c, _ := newTestContext(http.MethodPost, "/api/v1/friend-requests", `{"from":2,"to":2}`)

	err := h.CreateFriendRequest(c)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreateFriendRequestUnknownUser(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)
	c, _ := newTestContext(http.MethodPost, "/api/v1/friend-requests", `{"from":2,"to":99}`)

	err := h.CreateFriendRequest(c)
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}

func TestCreateFriendRequestDuplicate(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)

	c, _ := newTestContext(http.MethodPost, "/api/v1/friend-requests", `{"from":4,"to":2}`)
	err = h.CreateFriendRequest(c)
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, err))
}

func getFriendRequest(t *testing.T, h *FriendRequestHandler, ref string) (*echo.HTTPError, map[string]interface{}) {
	t.Helper()
	c, rec := newTestContext(http.MethodGet, "/api/v1/friend-requests/"+ref, "")
	c.SetPath("/api/v1/friend-requests/:ref")
	c.SetParamNames("ref")
	c.SetParamValues(ref)

	if err := h.GetFriendRequest(c); err != nil {
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		return he, nil
	}
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return nil, body
}

func TestGetFriendRequestByIDAndPair(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	created, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)

	for _, ref := range []string{"1", "2-4", "4-2"} {
		he, body := getFriendRequest(t, h, ref)
		require.Nil(t, he, "ref %q", ref)
		assert.Equal(t, float64(created.ID), body["id"], "ref %q", ref)
	}
}

func TestGetFriendRequestNotFound(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)

	he, _ := getFriendRequest(t, h, "1234")
	require.NotNil(t, he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetFriendRequestBadRef(t *testing.T) {
	h, _, _ := newFriendRequestHandler(t)

	for _, ref := range []string{"abc", "2-", "-4", "2-x"} {
		he, _ := getFriendRequest(t, h, ref)
		require.NotNil(t, he, "ref %q", ref)
		assert.Equal(t, http.StatusBadRequest, he.Code, "ref %q", ref)
	}
}

func patchFriendRequest(h *FriendRequestHandler, ref, body string) (*httptest.ResponseRecorder, error) {
	c, rec := newTestContext(http.MethodPatch, "/api/v1/friend-requests/"+ref, body)
	c.SetPath("/api/v1/friend-requests/:ref")
	c.SetParamNames("ref")
	c.SetParamValues(ref)
	return rec, h.UpdateFriendRequestStatus(c)
}

func TestAcceptFriendRequestUpdatesFriends(t *testing.T) {
	h, svc, users := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)

	rec, err := patchFriendRequest(h, "1", `{"status":"Accepted"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Accepted", body["status"])

	assert.Contains(t, users.users[2].FriendIDs(), uint(4))
	assert.Contains(t, users.users[4].FriendIDs(), uint(2))
}

func TestPatchResolvedFriendRequestConflicts(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)
	_, err = svc.SetStatus(services.ByID(1), models.StatusAccepted)
	require.NoError(t, err)

	_, err = patchFriendRequest(h, "1", `{"status":"Rejected"}`)
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, err))
}

func TestPatchFriendRequestRequiresStatus(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)

	_, err = patchFriendRequest(h, "1", `{}`)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))

	_, err = patchFriendRequest(h, "1", `{"status":"Pending"}`)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func deleteFriendRequest(h *FriendRequestHandler, ref string) (int, error) {
	c, rec := newTestContext(http.MethodDelete, "/api/v1/friend-requests/"+ref, "")
	c.SetPath("/api/v1/friend-requests/:ref")
	c.SetParamNames("ref")
	c.SetParamValues(ref)
	err := h.DeleteFriendRequest(c)
	return rec.Code, err
}

func TestWithdrawFriendRequest(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)

	code, err := deleteFriendRequest(h, "2-4")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, code)

	he, _ := getFriendRequest(t, h, "1")
	require.NotNil(t, he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestWithdrawResolvedFriendRequestConflicts(t *testing.T) {
	h, svc, _ := newFriendRequestHandler(t)
	_, err := svc.CreateRequest(2, 4)
	require.NoError(t, err)
	_, err = svc.SetStatus(services.ByID(1), models.StatusAccepted)
	require.NoError(t, err)

	_, err = deleteFriendRequest(h, "1")
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, err))
}
