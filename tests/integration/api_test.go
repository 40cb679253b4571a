package integration

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"confera/internal/models"
)

// Интеграционные тесты требуют запущенного стека (API + Postgres + NATS)
// и двух активных пользователей. Запуск:
//
//	CONFERA_API_URL=http://localhost:8080 go test ./tests/integration/
func setupClients(t *testing.T) (organizer, attendee *TestClient) {
	baseURL := os.Getenv("CONFERA_API_URL")
	if baseURL == "" {
		t.Skip("CONFERA_API_URL not set, skipping integration tests")
	}

	organizer = NewTestClient(baseURL,
		envOr("CONFERA_ORGANIZER_EMAIL", "organizer@example.com"),
		envOr("CONFERA_ORGANIZER_PASSWORD", "organizer123"))
	attendee = NewTestClient(baseURL,
		envOr("CONFERA_ATTENDEE_EMAIL", "attendee@example.com"),
		envOr("CONFERA_ATTENDEE_PASSWORD", "attendee123"))
	return organizer, attendee
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func uniqueTitle(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func futureWindow(days, durationHours int) (time.Time, time.Time) {
	start := time.Now().AddDate(0, 0, days).Truncate(time.Hour)
	return start, start.Add(time.Duration(durationHours) * time.Hour)
}

func createTestEvent(t *testing.T, organizer *TestClient, capacity int64) models.EventResponse {
	t.Helper()
	start, end := futureWindow(30, 48)

	event, status := organizer.CreateEvent(t, models.CreateEventRequest{
		Title:     uniqueTitle("Integration Event"),
		StartDate: start,
		EndDate:   end,
		Venue:     "Test Hall",
		Capacity:  capacity,
	})
	if status != http.StatusCreated {
		t.Fatalf("Failed to create event, status %d", status)
	}
	return event
}

func TestEventLifecycle(t *testing.T) {
	organizer, _ := setupClients(t)

	event := createTestEvent(t, organizer, 100)
	if event.RegistrationCount != 0 {
		t.Fatalf("New event should have zero registrations, got %d", event.RegistrationCount)
	}

	fetched, status := organizer.GetEvent(t, event.ID)
	if status != http.StatusOK {
		t.Fatalf("Failed to get event, status %d", status)
	}
	if fetched.Title != event.Title {
		t.Fatalf("Event title mismatch: got %q, want %q", fetched.Title, event.Title)
	}

	updated, status := organizer.UpdateEvent(t, event.ID, models.UpdateEventRequest{
		Title:     event.Title + " (updated)",
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		Venue:     "Bigger Hall",
		Capacity:  150,
	})
	if status != http.StatusOK {
		t.Fatalf("Failed to update event, status %d", status)
	}
	if updated.Venue != "Bigger Hall" || updated.Capacity != 150 {
		t.Fatalf("Event update not applied: %+v", updated)
	}

	if status := organizer.DeleteEvent(t, event.ID); status != http.StatusNoContent {
		t.Fatalf("Failed to delete event, status %d", status)
	}
	if _, status := organizer.GetEvent(t, event.ID); status != http.StatusNotFound {
		t.Fatalf("Deleted event should be gone, status %d", status)
	}
}

func TestEventUpdate_NonOrganizerForbidden(t *testing.T) {
	organizer, attendee := setupClients(t)

	event := createTestEvent(t, organizer, 10)
	defer organizer.DeleteEvent(t, event.ID)

	_, status := attendee.UpdateEvent(t, event.ID, models.UpdateEventRequest{
		Title:     event.Title,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		Venue:     event.Venue,
		Capacity:  event.Capacity,
	})
	if status != http.StatusForbidden {
		t.Fatalf("Non-organizer update should be forbidden, status %d", status)
	}
}

func TestRegistrationFlow(t *testing.T) {
	organizer, attendee := setupClients(t)

	event := createTestEvent(t, organizer, 10)
	defer organizer.DeleteEvent(t, event.ID)

	// Регистрация создается в статусе pending
	reg, resp := attendee.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to register, status %d", resp.StatusCode)
	}
	if reg.Status != models.RegistrationPending {
		t.Fatalf("New registration should be pending, got %q", reg.Status)
	}

	// Повторная регистрация отклоняется независимо от статуса
	_, resp = attendee.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Duplicate registration should fail, status %d", resp.StatusCode)
	}
	if kind := attendee.errorKind(t, resp); kind != "duplicate_registration" {
		t.Fatalf("Expected duplicate_registration, got %q", kind)
	}

	// Подтверждать может только организатор
	_, resp = attendee.ApproveRegistration(t, reg.ID)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Attendee approve should be forbidden, status %d", resp.StatusCode)
	}

	approved, resp := organizer.ApproveRegistration(t, reg.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to approve, status %d", resp.StatusCode)
	}
	if approved.Status != models.RegistrationConfirmed {
		t.Fatalf("Approved registration should be confirmed, got %q", approved.Status)
	}

	// Счетчик учитывает только подтвержденные регистрации
	fetched, _ := organizer.GetEvent(t, event.ID)
	if fetched.RegistrationCount != 1 {
		t.Fatalf("Expected registration_count 1, got %d", fetched.RegistrationCount)
	}

	cancelled, status := attendee.CancelRegistration(t, reg.ID)
	if status != http.StatusOK {
		t.Fatalf("Failed to cancel, status %d", status)
	}
	if cancelled.Status != models.RegistrationCancelled {
		t.Fatalf("Cancelled registration should be cancelled, got %q", cancelled.Status)
	}

	fetched, _ = organizer.GetEvent(t, event.ID)
	if fetched.RegistrationCount != 0 {
		t.Fatalf("Cancelled registration should not count, got %d", fetched.RegistrationCount)
	}

	// Повторная отмена идемпотентна
	cancelled, status = attendee.CancelRegistration(t, reg.ID)
	if status != http.StatusOK {
		t.Fatalf("Re-cancelling should succeed, status %d", status)
	}
	if cancelled.Status != models.RegistrationCancelled {
		t.Fatalf("Re-cancelled registration should stay cancelled, got %q", cancelled.Status)
	}
}

func TestEventCapacity(t *testing.T) {
	organizer, attendee := setupClients(t)

	event := createTestEvent(t, organizer, 1)
	defer organizer.DeleteEvent(t, event.ID)

	orgReg, resp := organizer.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to register organizer, status %d", resp.StatusCode)
	}
	if _, resp := organizer.ApproveRegistration(t, orgReg.ID); resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to approve, status %d", resp.StatusCode)
	}

	// Событие заполнено, новая регистрация отклоняется
	_, resp = attendee.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Registration at capacity should fail, status %d", resp.StatusCode)
	}
	if kind := attendee.errorKind(t, resp); kind != "event_at_capacity" {
		t.Fatalf("Expected event_at_capacity, got %q", kind)
	}
}

func TestApproveAtCapacity(t *testing.T) {
	organizer, attendee := setupClients(t)

	event := createTestEvent(t, organizer, 1)
	defer organizer.DeleteEvent(t, event.ID)

	// Два pending на одно место: оба проходят, место занимает первый
	// подтвержденный
	regA, resp := organizer.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to register first attendee, status %d", resp.StatusCode)
	}
	regB, resp := attendee.RegisterForEvent(t, event.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to register second attendee, status %d", resp.StatusCode)
	}

	if _, resp := organizer.ApproveRegistration(t, regA.ID); resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to approve first registration, status %d", resp.StatusCode)
	}

	_, resp = organizer.ApproveRegistration(t, regB.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Approving past capacity should fail, status %d", resp.StatusCode)
	}
	if kind := organizer.errorKind(t, resp); kind != "event_at_capacity" {
		t.Fatalf("Expected event_at_capacity, got %q", kind)
	}

	fetched, _ := organizer.GetEvent(t, event.ID)
	if fetched.RegistrationCount != 1 {
		t.Fatalf("Expected registration_count 1, got %d", fetched.RegistrationCount)
	}
}

func TestScheduleConflict(t *testing.T) {
	organizer, _ := setupClients(t)

	event := createTestEvent(t, organizer, 50)
	defer organizer.DeleteEvent(t, event.ID)

	track, status := organizer.CreateTrack(t, event.ID, models.CreateTrackRequest{
		Name: uniqueTitle("Track"),
	})
	if status != http.StatusCreated {
		t.Fatalf("Failed to create track, status %d", status)
	}

	base := event.StartDate

	_, resp := organizer.CreateSession(t, track.ID, models.CreateSessionRequest{
		Title:     "Opening Keynote",
		StartTime: base.Add(10 * time.Hour),
		EndTime:   base.Add(12 * time.Hour),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to create session, status %d", resp.StatusCode)
	}

	// Пересечение [11,13) с [10,12) в одном треке
	_, resp = organizer.CreateSession(t, track.ID, models.CreateSessionRequest{
		Title:     "Overlapping Talk",
		StartTime: base.Add(11 * time.Hour),
		EndTime:   base.Add(13 * time.Hour),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Overlapping session should fail, status %d", resp.StatusCode)
	}
	if kind := organizer.errorKind(t, resp); kind != "scheduling_conflict" {
		t.Fatalf("Expected scheduling_conflict, got %q", kind)
	}

	// Стык [12,13) конфликтом не является
	_, resp = organizer.CreateSession(t, track.ID, models.CreateSessionRequest{
		Title:     "Back-to-back Talk",
		StartTime: base.Add(12 * time.Hour),
		EndTime:   base.Add(13 * time.Hour),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Back-to-back session should be allowed, status %d", resp.StatusCode)
	}
}

func TestSessionRegistration(t *testing.T) {
	organizer, attendee := setupClients(t)

	event := createTestEvent(t, organizer, 50)
	defer organizer.DeleteEvent(t, event.ID)

	track, _ := organizer.CreateTrack(t, event.ID, models.CreateTrackRequest{
		Name: uniqueTitle("Track"),
	})
	session, resp := organizer.CreateSession(t, track.ID, models.CreateSessionRequest{
		Title:     "Workshop",
		StartTime: event.StartDate.Add(2 * time.Hour),
		EndTime:   event.StartDate.Add(4 * time.Hour),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to create session, status %d", resp.StatusCode)
	}

	// Без подтвержденной регистрации на событие вход в сессию закрыт
	_, resp = attendee.RegisterForSession(t, session.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Session signup without confirmed registration should fail, status %d", resp.StatusCode)
	}
	if kind := attendee.errorKind(t, resp); kind != "event_registration_required" {
		t.Fatalf("Expected event_registration_required, got %q", kind)
	}

	reg, _ := attendee.RegisterForEvent(t, event.ID)
	if _, resp := organizer.ApproveRegistration(t, reg.ID); resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to approve, status %d", resp.StatusCode)
	}

	sr, resp := attendee.RegisterForSession(t, session.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Failed to join session, status %d", resp.StatusCode)
	}

	// Повторная запись на ту же сессию отклоняется
	_, resp = attendee.RegisterForSession(t, session.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Duplicate session signup should fail, status %d", resp.StatusCode)
	}
	if kind := attendee.errorKind(t, resp); kind != "duplicate_registration" {
		t.Fatalf("Expected duplicate_registration, got %q", kind)
	}

	// Отмена удаляет запись, после чего можно записаться снова
	if status := attendee.CancelSessionRegistration(t, sr.ID); status != http.StatusNoContent {
		t.Fatalf("Failed to cancel session registration, status %d", status)
	}
	if _, resp := attendee.RegisterForSession(t, session.ID); resp.StatusCode != http.StatusCreated {
		t.Fatalf("Re-joining after cancel should succeed, status %d", resp.StatusCode)
	}
}
