package dispatch

import (
	"context"
	"testing"
	"time"

	"medilink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableIDs(t *testing.T, svc *DefaultDispatchService, doctorID string) []string {
	t.Helper()
	requests, err := svc.GetAvailableRequests(context.Background(), doctorID)
	require.NoError(t, err)
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	return ids
}

func TestAvailabilityUnionOfAssignedAndBroadcast(t *testing.T) {
	reqs := newFakeRequestRepo()
	reqs.put(pendingRoot("assigned-1", "doc-b", testEpoch))
	broadcast := pendingRoot("broadcast-1", "", testEpoch)
	broadcast.ServiceID = "svc-1"
	reqs.put(broadcast)

	docs := newFakeDoctorRepo(doctorOffering("doc-b", "svc-1"))
	svc, _ := newTestService(reqs, docs, newFakeClock(testEpoch), 2*time.Minute)

	assert.ElementsMatch(t, []string{"assigned-1", "broadcast-1"}, availableIDs(t, svc, "doc-b"))
}

func TestAvailabilityRequiresServiceMatch(t *testing.T) {
	reqs := newFakeRequestRepo()
	other := pendingRoot("broadcast-1", "", testEpoch)
	other.ServiceID = "svc-9"
	reqs.put(other)

	docs := newFakeDoctorRepo(doctorOffering("doc-b", "svc-1"))
	svc, _ := newTestService(reqs, docs, newFakeClock(testEpoch), 2*time.Minute)

	assert.Empty(t, availableIDs(t, svc, "doc-b"))
}

func TestAvailabilityExcludesDeclined(t *testing.T) {
	reqs := newFakeRequestRepo()
	broadcast := pendingRoot("broadcast-1", "", testEpoch)
	broadcast.ServiceID = "svc-1"
	broadcast.DeclinedByDoctors = []string{"doc-b"}
	reqs.put(broadcast)

	docs := newFakeDoctorRepo(
		doctorOffering("doc-b", "svc-1"),
		doctorOffering("doc-c", "svc-1"),
	)
	svc, _ := newTestService(reqs, docs, newFakeClock(testEpoch), 2*time.Minute)

	// Invisible to the decliner, still visible to everyone else.
	assert.Empty(t, availableIDs(t, svc, "doc-b"))
	assert.ElementsMatch(t, []string{"broadcast-1"}, availableIDs(t, svc, "doc-c"))
}

func TestAvailabilityExcludesOtherDoctorsAssignments(t *testing.T) {
	reqs := newFakeRequestRepo()
	assigned := pendingRoot("assigned-1", "doc-c", testEpoch)
	assigned.ServiceID = "svc-1"
	reqs.put(assigned)

	docs := newFakeDoctorRepo(doctorOffering("doc-b", "svc-1"))
	svc, _ := newTestService(reqs, docs, newFakeClock(testEpoch), 2*time.Minute)

	assert.Empty(t, availableIDs(t, svc, "doc-b"))
}

func TestAvailabilityExcludesResolvedRequests(t *testing.T) {
	reqs := newFakeRequestRepo()
	for _, status := range []string{
		models.RequestStatusAccepted,
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
		models.RequestStatusCompleted,
	} {
		req := pendingRoot("req-"+status, "doc-b", testEpoch)
		req.Status = status
		reqs.put(req)
	}

	docs := newFakeDoctorRepo(doctorOffering("doc-b", "svc-1"))
	svc, _ := newTestService(reqs, docs, newFakeClock(testEpoch), 2*time.Minute)

	assert.Empty(t, availableIDs(t, svc, "doc-b"))
}

func TestAvailabilityUnknownDoctor(t *testing.T) {
	svc, _ := newTestService(newFakeRequestRepo(), newFakeDoctorRepo(), newFakeClock(testEpoch), 2*time.Minute)

	_, err := svc.GetAvailableRequests(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeNotFound))
}

func TestAvailabilityEmptyIsNotNil(t *testing.T) {
	docs := newFakeDoctorRepo(doctorOffering("doc-b", "svc-1"))
	svc, _ := newTestService(newFakeRequestRepo(), docs, newFakeClock(testEpoch), 2*time.Minute)

	requests, err := svc.GetAvailableRequests(context.Background(), "doc-b")
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)
}
