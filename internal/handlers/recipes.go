package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"barboard/internal/backend"
	applog "barboard/internal/log"
	"barboard/internal/listing"
	"barboard/internal/saga"
	"barboard/models"
)

const recipePictureBucket = "recipe-pictures"

type recipeIngredientPayload struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type recipeStepPayload struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

type recipePayload struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	PrepTime    int                       `json:"prep_time"`
	CookTime    int                       `json:"cook_time"`
	Image       *upload                   `json:"image"`
	Tags        []uint                    `json:"tags"`
	Ingredients []recipeIngredientPayload `json:"ingredients"`
	Equipment   []uint                    `json:"equipment"`
	Steps       []recipeStepPayload       `json:"steps"`
	Categories  []uint                    `json:"categories"`
}

func (p *recipePayload) valid() bool {
	p.Name = strings.TrimSpace(p.Name)
	return p.Name != "" && p.PrepTime >= 0 && p.CookTime >= 0
}

// recipeRow is a recipe with its image URL resolved.
type recipeRow struct {
	models.Recipe
	ImageURL string `json:"image_url"`
}

type recipeDetail struct {
	recipeRow
	Tags        []string                  `json:"tags"`
	Categories  []string                  `json:"categories"`
	Equipment   []string                  `json:"equipment"`
	Ingredients []models.RecipeIngredient `json:"ingredients"`
	Steps       []models.Step             `json:"steps"`
}

// RecipeResource handles REST-style interactions for recipes.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if client == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	id, rest, ok := resourceID(r, "/admin/api/recipes")
	if !ok {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
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
		showRecipe(w, r, id)
	case http.MethodPut:
		updateRecipe(w, r, id)
	case http.MethodDelete:
		deleteRecipe(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func projectRecipe(row models.Recipe) recipeRow {
	return recipeRow{
		Recipe:   row,
		ImageURL: publicURL(recipePictureBucket, row.ImagePath),
	}
}

var recipeSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"total_time": "total_time",
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseListParams(r)
	order := sortColumn(params, recipeSortColumns, backend.Order{Column: "id", Descending: true})
	offset, limit := listing.PageRange(params.Page, listing.DefaultPageSize)

	var rows []models.Recipe
	count, err := client.Select(ctx, backend.Query{
		Table: "recipes",
		Order: &order,
		Range: &backend.Range{Offset: offset, Limit: limit},
		Count: true,
	}, &rows)
	if err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	projected := make([]recipeRow, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, projectRecipe(row))
	}
	projected = searchPage(projected, params, func(row recipeRow) string { return row.Name })

	writeJSON(w, http.StatusOK, listResponse{
		Rows:       projected,
		Page:       params.Page,
		TotalPages: listing.TotalPages(count, listing.DefaultPageSize),
	})
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload recipePayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	imagePath := ""
	if payload.Image.present() {
		stored, err := storeUpload(ctx, recipePictureBucket, payload.Image)
		if err != nil {
			applog.Error(ctx, "failed to upload recipe picture", "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		imagePath = stored
	}

	row := models.Recipe{
		Name:        payload.Name,
		Description: strings.TrimSpace(payload.Description),
		PrepTime:    payload.PrepTime,
		CookTime:    payload.CookTime,
		TotalTime:   payload.PrepTime + payload.CookTime,
		ImagePath:   imagePath,
	}
	if err := client.Insert(ctx, "recipes", &row); err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	saga.Run(ctx, row.ID, []saga.Step{
		{Description: "tags", Execute: func(ctx context.Context, recipeID uint) error {
			return insertRecipeTags(ctx, recipeID, payload.Tags)
		}},
		{Description: "ingredients", Execute: func(ctx context.Context, recipeID uint) error {
			return insertRecipeIngredients(ctx, recipeID, payload.Ingredients)
		}},
		{Description: "equipment", Execute: func(ctx context.Context, recipeID uint) error {
			return insertRecipeEquipment(ctx, recipeID, payload.Equipment)
		}},
		{Description: "steps", Execute: func(ctx context.Context, recipeID uint) error {
			return insertRecipeSteps(ctx, recipeID, payload.Steps)
		}},
		{Description: "categories", Execute: func(ctx context.Context, recipeID uint) error {
			return insertRecipeCategories(ctx, recipeID, payload.Categories)
		}},
	})

	writeJSON(w, http.StatusCreated, row)
}

func insertRecipeTags(ctx context.Context, recipeID uint, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		if tagID == 0 {
			continue
		}
		link := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		if err := client.Insert(ctx, "recipe_tags", &link); err != nil {
			return err
		}
	}
	return nil
}

// insertRecipeIngredients skips entries that never picked an ingredient, a
// half-filled row in the recipe form.
func insertRecipeIngredients(ctx context.Context, recipeID uint, ingredients []recipeIngredientPayload) error {
	for _, ingredient := range ingredients {
		if ingredient.IngredientID == 0 {
			continue
		}
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredient.IngredientID,
			Quantity:     ingredient.Quantity,
		}
		if err := client.Insert(ctx, "recipe_ingredients", &link); err != nil {
			return err
		}
	}
	return nil
}

func insertRecipeEquipment(ctx context.Context, recipeID uint, equipmentIDs []uint) error {
	for _, equipmentID := range equipmentIDs {
		if equipmentID == 0 {
			continue
		}
		link := models.RecipeEquipment{RecipeID: recipeID, EquipmentID: equipmentID, Quantity: 1}
		if err := client.Insert(ctx, "recipe_equipment", &link); err != nil {
			return err
		}
	}
	return nil
}

func insertRecipeSteps(ctx context.Context, recipeID uint, steps []recipeStepPayload) error {
	ordered := make([]recipeStepPayload, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StepNumber < ordered[j].StepNumber
	})

	for _, step := range ordered {
		if strings.TrimSpace(step.Description) == "" {
			continue
		}
		row := models.Step{
			RecipeID:    recipeID,
			StepNumber:  step.StepNumber,
			Description: strings.TrimSpace(step.Description),
		}
		if err := client.Insert(ctx, "steps", &row); err != nil {
			return err
		}
	}
	return nil
}

func insertRecipeCategories(ctx context.Context, recipeID uint, categoryIDs []uint) error {
	for _, categoryID := range categoryIDs {
		if categoryID == 0 {
			continue
		}
		link := models.RecipeCategoryLink{RecipeID: recipeID, CategoryID: categoryID}
		if err := client.Insert(ctx, "recipe_category", &link); err != nil {
			return err
		}
	}
	return nil
}

func showRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	row, err := fetchOne[models.Recipe](ctx, "recipes", id)
	if err != nil {
		applog.Error(ctx, "failed to load recipe", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if row == nil {
		http.NotFound(w, r)
		return
	}

	detail, err := assembleRecipeDetail(ctx, *row)
	if err != nil {
		applog.Error(ctx, "failed to assemble recipe detail", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// assembleRecipeDetail gathers the junction rows and resolves their labels.
// Any failed fetch collapses the whole view into a fetch error.
func assembleRecipeDetail(ctx context.Context, row models.Recipe) (recipeDetail, error) {
	tagLinks, err := fetchAll[models.RecipeTag](ctx, "recipe_tags", nil, backend.Eq("recipe_id", row.ID))
	if err != nil {
		return recipeDetail{}, err
	}
	categoryLinks, err := fetchAll[models.RecipeCategoryLink](ctx, "recipe_category", nil, backend.Eq("recipe_id", row.ID))
	if err != nil {
		return recipeDetail{}, err
	}
	equipmentLinks, err := fetchAll[models.RecipeEquipment](ctx, "recipe_equipment", nil, backend.Eq("recipe_id", row.ID))
	if err != nil {
		return recipeDetail{}, err
	}
	ingredients, err := fetchAll[models.RecipeIngredient](ctx, "recipe_ingredients", nil, backend.Eq("recipe_id", row.ID))
	if err != nil {
		return recipeDetail{}, err
	}
	steps, err := fetchAll[models.Step](ctx, "steps", &backend.Order{Column: "step_number"}, backend.Eq("recipe_id", row.ID))
	if err != nil {
		return recipeDetail{}, err
	}

	tagRows, err := fetchAll[models.Tag](ctx, "tags", nil)
	if err != nil {
		return recipeDetail{}, err
	}
	categoryRows, err := fetchAll[models.RecipeCategory](ctx, "category", nil)
	if err != nil {
		return recipeDetail{}, err
	}
	equipmentRows, err := fetchAll[models.Equipment](ctx, "equipment", nil)
	if err != nil {
		return recipeDetail{}, err
	}

	tagNames := listing.BuildLookup(tagRows,
		func(t models.Tag) uint { return t.ID },
		func(t models.Tag) string { return t.Name })
	categoryNames := listing.BuildLookup(categoryRows,
		func(c models.RecipeCategory) uint { return c.ID },
		func(c models.RecipeCategory) string { return c.Name })
	equipmentNames := listing.BuildLookup(equipmentRows,
		func(e models.Equipment) uint { return e.ID },
		func(e models.Equipment) string { return e.Name })

	detail := recipeDetail{
		recipeRow:   projectRecipe(row),
		Tags:        make([]string, 0, len(tagLinks)),
		Categories:  make([]string, 0, len(categoryLinks)),
		Equipment:   make([]string, 0, len(equipmentLinks)),
		Ingredients: ingredients,
		Steps:       steps,
	}
	for _, link := range tagLinks {
		if name := tagNames.Label(link.TagID); name != "" {
			detail.Tags = append(detail.Tags, name)
		}
	}
	for _, link := range categoryLinks {
		if name := categoryNames.Label(link.CategoryID); name != "" {
			detail.Categories = append(detail.Categories, name)
		}
	}
	for _, link := range equipmentLinks {
		if name := equipmentNames.Label(link.EquipmentID); name != "" {
			detail.Equipment = append(detail.Equipment, name)
		}
	}
	return detail, nil
}

func updateRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Recipe](ctx, "recipes", id)
	if err != nil {
		applog.Error(ctx, "failed to load recipe for update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	var payload recipePayload
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe update payload", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		writeJSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	imagePath := existing.ImagePath
	if payload.Image.present() {
		stored, err := storeUpload(ctx, recipePictureBucket, payload.Image)
		if err != nil {
			applog.Error(ctx, "failed to upload replacement recipe picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		imagePath = stored
	}

	// total_time is derived from the new prep and cook inputs on every edit.
	patch := map[string]any{
		"name":        payload.Name,
		"description": strings.TrimSpace(payload.Description),
		"prep_time":   payload.PrepTime,
		"cook_time":   payload.CookTime,
		"total_time":  payload.PrepTime + payload.CookTime,
		"image_path":  imagePath,
	}
	if err := client.Update(ctx, "recipes", patch, backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to update recipe", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, msgSaveFailed)
		return
	}

	updated, err := fetchOne[models.Recipe](ctx, "recipes", id)
	if err != nil || updated == nil {
		applog.Error(ctx, "failed to reload recipe after update", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, id uint) {
	ctx := r.Context()
	existing, err := fetchOne[models.Recipe](ctx, "recipes", id)
	if err != nil {
		applog.Error(ctx, "failed to load recipe for delete", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	if existing.ImagePath != "" && fileStore != nil {
		if err := fileStore.Remove(ctx, recipePictureBucket, existing.ImagePath); err != nil {
			applog.Error(ctx, "failed to remove recipe picture", "id", id, "error", err)
			writeJSONError(w, http.StatusInternalServerError, msgRemoveFailed)
			return
		}
	}

	if err := client.Delete(ctx, "recipes", backend.Eq("id", id)); err != nil {
		applog.Error(ctx, "failed to delete recipe", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	for _, table := range []string{"recipe_tags", "recipe_ingredients", "recipe_equipment", "recipe_category", "steps"} {
		if err := client.Delete(ctx, table, backend.Eq("recipe_id", id)); err != nil {
			applog.Error(ctx, "failed to clear recipe children", "table", table, "recipe", id, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
