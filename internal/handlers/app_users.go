package handlers

import (
	"context"
	"net/http"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/models"
)

const profilePictureBucket = "profile-picture"

type appUserPayload struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Birthday  string  `json:"birthday"`
	RoleID    uint    `json:"role_id"`
	Picture   *upload `json:"picture"`
}

func (p *appUserPayload) valid() bool {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return p.Username != "" && p.Email != ""
}

// appUserRow is a profile with its role resolved.
type appUserRow struct {
	models.Profile
	RoleName   string `json:"role_name"`
	RoleID     uint   `json:"role_id"`
	PictureURL string `json:"picture_url"`
}

// AppUserResource handles REST-style interactions for application user profiles.
func AppUserResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/appusers")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listAppUsers(w, r)
		case http.MethodPost:
			createAppUser(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(rest) > 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showAppUser(w, r, id)
	case http.MethodPut:
		updateAppUser(w, r, id)
	case http.MethodDelete:
		deleteAppUser(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// userRoleIndex maps user id → role id from the denormalized user_roles table.
func userRoleIndex(ctx context.Context) (map[uint]uint, listing.Lookup, error) {
	assignments, err := fetchAll[models.UserRole](ctx, "user_roles", nil)
	if err != nil {
		return nil, nil, err
	}
	roles, err := fetchAll[models.Role](ctx, "roles", nil)
	if err != nil {
		return nil, nil, err
	}

	byUser := make(map[uint]uint, len(assignments))
	for _, assignment := range assignments {
		byUser[assignment.UserID] = assignment.RoleID
	}
	labels := listing.BuildLookup(roles,
		func(role models.Role) uint { return role.ID },
		func(role models.Role) string { return role.RoleName })
	return byUser, labels, nil
}

func projectAppUser(profile models.Profile, byUser map[uint]uint, roles listing.Lookup) appUserRow {
	roleID := byUser[profile.ID]
	return appUserRow{
		Profile:    profile,
		RoleID:     roleID,
		RoleName:   roles.Label(roleID),
		PictureURL: publicURL(profilePictureBucket, profile.PicturePath),
	}
}

var appUserSortColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"email":    "email",
}

func listAppUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, appUserSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Profile
	count, err := client.Select(ctx, backend.Query{
		Table: "profiles",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list profiles", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	byUser, roles, err := userRoleIndex(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load role assignments", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]appUserRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectAppUser(row, byUser, roles))
	}
	projected = searchPage(projected, params, func(row appUserRow) string { return row.Username })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createAppUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload appUserPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid app user payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picturePath := ""
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, profilePictureBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload profile picture", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picturePath = stored
	}

	profile := models.Profile{
		Username:    payload.Username,
		Email:       payload.Email,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Birthday:    payload.Birthday,
		PicturePath: picturePath,
	}
	if err := client.Insert(ctx, "profiles", &profile); err != nil {
		applog.Error(ctx, "failed to create profile", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	// The role row is best-effort: a failure leaves the profile in place.
	if payload.RoleID != 0 {
		assignment := models.UserRole{UserID: profile.ID, RoleID: payload.RoleID}
		if err := client.Insert(ctx, "user_roles", &assignment); err != nil {
			applog.Error(ctx, "failed to assign role", "user", profile.ID, "role", payload.RoleID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, profile)
}

func showAppUser(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	profile, err := fetchOne[models.Profile](ctx, "profiles", id)
	if err != nil {
		applog.Error(ctx, "failed to load profile", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if profile == nil {
		http.NotFound(w, r)
		return
	}

	byUser, roles, err := userRoleIndex(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load role assignments", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, projectAppUser(*profile, byUser, roles))
}

func updateAppUser(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Profile](ctx, "profiles", id)
	if err != nil {
		applog.Error(ctx, "failed to load profile for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload appUserPayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid app user update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	picturePath := existing.PicturePath
	if payload.Picture.present() {
		stored, err := storeUpload(ctx, profilePictureBucket, payload.Picture)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		picturePath = stored
	}

	patch := map[string]any{
		"username":     payload.Username,
		"email":        payload.Email,
		"first_name":   payload.FirstName,
		"last_name":    payload.LastName,
		"birthday":     payload.Birthday,
		"picture_path": picturePath,
	}
	if err := client.Update(ctx, "profiles", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update profile", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	// The role assignment is a second, separate write against user_roles.
	if payload.RoleID != 0 {
		if err := assignRole(ctx, id, payload.RoleID); err != nil {
			applog.Error(ctx, "failed to update role assignment", "user", id, "role", payload.RoleID, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgSaveFailed)
			return
		}
	}

	updated, err := fetchOne[models.Profile](ctx, "profiles", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload profile after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func assignRole(ctx context.Context, userID, roleID uint) error {
	var assignments []models.UserRole
	_, err := client.Select(ctx, backend.Query{
		Table:   "user_roles",
		Filters: []backend.Filter{backend.Eq("user_id", userID)},
		Range:   &backend.Range{Offset: 0, Limit: 1},
	}, &assignments)
	if err != nil {
		return err
	}

	if len(assignments) == 0 {
		assignment := models.UserRole{UserID: userID, RoleID: roleID}
		return client.Insert(ctx, "user_roles", &assignment)
	}
	return client.Update(ctx, "user_roles", map[string]any{"role_id": roleID}, backend.Eq("user_id", userID))
}

func deleteAppUser(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Profile](ctx, "profiles", id)
	if err != nil {
		applog.Error(ctx, "failed to load profile for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if existing.PicturePath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, profilePictureBucket, existing.PicturePath); err != nil {
			applog.Error(ctx, "failed to remove profile picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "profiles", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete profile", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	// Orphaned role assignments are cleared best-effort after the profile.
	if err := client.Delete(ctx, "user_roles", backend.Eq("user_id", id)); err != nil {
		applog.Error(ctx, "failed to clear role assignments", "user", id, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
