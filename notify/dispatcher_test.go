package notify

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intake-backend/database"
	"intake-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.WebsiteRequest{}, &models.ContactMessage{}))
	return db
}

func pendingRequest(t *testing.T, db *gorm.DB) models.WebsiteRequest {
	t.Helper()
	rec := models.WebsiteRequest{
		FullName:    "Jane Doe",
		Email:       "jane@x.com",
		Community:   models.CommunityOther,
		CompanyName: "Jane Consulting",
		SiteGoal:    "Generate leads",
		PagesWanted: []string{"Home/Landing Page"},
	}
	require.NoError(t, db.Create(&rec).Error)
	return rec
}

func reload(t *testing.T, db *gorm.DB, id string) models.WebsiteRequest {
	t.Helper()
	var rec models.WebsiteRequest
	require.NoError(t, db.Where("id = ?", id).First(&rec).Error)
	return rec
}

func TestDispatchWebhookSuccess(t *testing.T) {
	db := newTestDB(t)
	rec := pendingRequest(t, db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	mailer := &fakeMailer{}
	d := NewDispatcher(db, mailer, srv.URL)
	d.Dispatch(rec)
	d.Wait()

	got := reload(t, db, rec.Id)
	assert.Equal(t, models.StatusNotified, got.Status)
	assert.True(t, got.WebhookFired)
	assert.JSONEq(t, `{"ok":true}`, string(got.WebhookResponse))
	assert.Equal(t, []string{"jane@x.com"}, mailer.sent)
}

func TestDispatchWebhookServerError(t *testing.T) {
	db := newTestDB(t)
	rec := pendingRequest(t, db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(db, &fakeMailer{}, srv.URL)
	d.Dispatch(rec)
	d.Wait()

	got := reload(t, db, rec.Id)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.False(t, got.WebhookFired)
	assert.Contains(t, string(got.WebhookResponse), "500")
}

func TestDispatchWebhookTimeout(t *testing.T) {
	db := newTestDB(t)
	rec := pendingRequest(t, db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	d := NewDispatcher(db, &fakeMailer{}, srv.URL)
	d.Timeout = 50 * time.Millisecond
	d.Dispatch(rec)
	d.Wait()

	got := reload(t, db, rec.Id)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Contains(t, string(got.WebhookResponse), "error")
}

func TestDispatchEmailFailureDoesNotAffectStatus(t *testing.T) {
	db := newTestDB(t)
	rec := pendingRequest(t, db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	d := NewDispatcher(db, &fakeMailer{err: errors.New("relay down")}, srv.URL)
	d.Dispatch(rec)
	d.Wait()

	got := reload(t, db, rec.Id)
	assert.Equal(t, models.StatusNotified, got.Status, "email outcome must not leak into webhook status")
}

func TestPatchRequestStatusIdempotent(t *testing.T) {
	db := newTestDB(t)
	rec := pendingRequest(t, db)

	detail := []byte(`{"error":"webhook returned 500"}`)
	require.NoError(t, database.PatchRequestStatus(db, rec.Id, models.StatusFailed, false, detail))

	// Second terminal patch is a no-op: no backward transition, no overwrite.
	require.NoError(t, database.PatchRequestStatus(db, rec.Id, models.StatusNotified, true, []byte(`{"ok":true}`)))

	got := reload(t, db, rec.Id)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.JSONEq(t, string(detail), string(got.WebhookResponse))
}

func TestPatchRequestStatusMissingRecord(t *testing.T) {
	db := newTestDB(t)

	err := database.PatchRequestStatus(db, "no-such-id", models.StatusNotified, true, []byte(`{}`))
	assert.ErrorIs(t, err, database.ErrRequestNotFound)
}

func TestSendContactConfirmation(t *testing.T) {
	db := newTestDB(t)

	msg := models.ContactMessage{Name: "Jane", Email: "jane@x.com", Message: "hello there, nice site"}
	require.NoError(t, db.Create(&msg).Error)

	mailer := &fakeMailer{}
	d := NewDispatcher(db, mailer, "")
	d.SendContactConfirmation(msg)
	d.Wait()

	var got models.ContactMessage
	require.NoError(t, db.Where("id = ?", msg.Id).First(&got).Error)
	assert.Equal(t, models.ContactSent, got.Status)
	assert.Equal(t, []string{"jane@x.com"}, mailer.sent)
}

func TestSendContactConfirmationFailure(t *testing.T) {
	db := newTestDB(t)

	msg := models.ContactMessage{Name: "Jane", Email: "jane@x.com", Message: "hello there, nice site"}
	require.NoError(t, db.Create(&msg).Error)

	d := NewDispatcher(db, &fakeMailer{err: errors.New("relay down")}, "")
	d.SendContactConfirmation(msg)
	d.Wait()

	var got models.ContactMessage
	require.NoError(t, db.Where("id = ?", msg.Id).First(&got).Error)
	assert.Equal(t, models.ContactFailed, got.Status)
	assert.Equal(t, "relay down", got.SendError)
}
