package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"barboard/models"
)

func TestCreateAppUserAssignsRole(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	if err := db.Create(&models.Role{RoleName: "member"}).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"username": "maya",
		"email":    "Maya@Example.com",
		"role_id":  1,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/appusers", bytes.NewReader(body))
	w := httptest.NewRecorder()
	AppUserResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Email != "maya@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}

	var assignment models.UserRole
	if err := db.Where("user_id = ?", created.ID).First(&assignment).Error; err != nil {
		t.Fatalf("expected a role assignment: %v", err)
	}
	if assignment.RoleID != 1 {
		t.Fatalf("expected role 1, got %d", assignment.RoleID)
	}
}

func TestAppUserViewResolvesRoleName(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	if err := db.Create(&models.Role{RoleName: "staff"}).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}
	profile := models.Profile{Username: "leon", Email: "leon@example.com"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	if err := db.Create(&models.UserRole{UserID: profile.ID, RoleID: 1}).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/api/appusers/%d", profile.ID), nil)
	w := httptest.NewRecorder()
	AppUserResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var row appUserRow
	if err := json.Unmarshal(w.Body.Bytes(), &row); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if row.RoleName != "staff" || row.RoleID != 1 {
		t.Fatalf("expected resolved role, got %+v", row)
	}
}

func TestUpdateAppUserMovesRoleAssignment(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	for _, name := range []string{"member", "staff"} {
		if err := db.Create(&models.Role{RoleName: name}).Error; err != nil {
			t.Fatalf("failed to seed role: %v", err)
		}
	}
	profile := models.Profile{Username: "leon", Email: "leon@example.com"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	if err := db.Create(&models.UserRole{UserID: profile.ID, RoleID: 1}).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"username": "leon",
		"email":    "leon@example.com",
		"role_id":  2,
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/appusers/%d", profile.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	AppUserResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var assignments []models.UserRole
	if err := db.Where("user_id = ?", profile.ID).Find(&assignments).Error; err != nil {
		t.Fatalf("failed to load assignments: %v", err)
	}
	if len(assignments) != 1 || assignments[0].RoleID != 2 {
		t.Fatalf("expected the existing assignment updated in place, got %+v", assignments)
	}
}

func TestUpdateAppUserWithoutRoleAssignsFresh(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)

	if err := db.Create(&models.Role{RoleName: "member"}).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}
	profile := models.Profile{Username: "nora", Email: "nora@example.com"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"username": "nora",
		"email":    "nora@example.com",
		"role_id":  1,
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/api/appusers/%d", profile.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	AppUserResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var assignment models.UserRole
	if err := db.Where("user_id = ?", profile.ID).First(&assignment).Error; err != nil {
		t.Fatalf("expected a fresh assignment: %v", err)
	}
	if assignment.RoleID != 1 {
		t.Fatalf("expected role 1, got %d", assignment.RoleID)
	}
}

func TestDeleteAppUserPictureFailureKeepsProfile(t *testing.T) {
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)
	t.Cleanup(withFailingStorage(t))

	profile := models.Profile{Username: "leon", Email: "leon@example.com", PicturePath: "leon.png"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/api/appusers/%d", profile.ID), nil)
	w := httptest.NewRecorder()
	AppUserResource(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if count != 1 {
		t.Fatal("expected the profile to survive the failed removal")
	}
}
