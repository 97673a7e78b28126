// Package mock provides an in-memory database seeded with representative
// platform data, used for local development and demos.
package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "barboard/internal/db"
	applog "barboard/internal/log"
	"barboard/models"
)

// New returns an in-memory sqlite database seeded with enough rows to walk
// every admin screen.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:barboard-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := appdb.AutoMigrate(db); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("barboard"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.AdminUser{
		Name:         "Dashboard Admin",
		Email:        "admin@barboard.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	citrus := models.IngredientCategory{CategoryName: "Citrus", CategoryDescription: "Bright, acidic produce."}
	dairy := models.IngredientCategory{CategoryName: "Dairy", CategoryDescription: "Chilled dairy goods."}
	grams := models.Unit{UnitDescription: "grams"}
	pieces := models.Unit{UnitDescription: "pieces"}
	bottle := models.UnitInv{UnitInvTag: "bottle"}
	crate := models.UnitInv{UnitInvTag: "crate"}
	for _, row := range []any{&citrus, &dairy, &grams, &pieces, &bottle, &crate} {
		if err := db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
	}

	lemon := models.Ingredient{
		Name:                  "Lemon",
		IconPath:              "icons/lemon.png",
		NutritionalInfo:       models.NutritionalInfo{"fat": "0.3", "protein": "1.1", "calories": "29", "carbohydrate": "9.3"},
		PredShelfLife:         "7 days",
		StorageTips:           "Keep refrigerated away from direct light.",
		IngredientsCategoryID: citrus.ID,
		QuantityUnitID:        grams.ID,
		QuantityUnitInvID:     crate.ID,
	}
	butter := models.Ingredient{
		Name:                  "Butter",
		IconPath:              "icons/butter.png",
		NutritionalInfo:       models.NutritionalInfo{"fat": "81", "protein": "0.9", "calories": "717", "carbohydrate": "0.1"},
		PredShelfLife:         "30 days",
		StorageTips:           "Refrigerate in a covered dish.",
		IngredientsCategoryID: dairy.ID,
		QuantityUnitID:        grams.ID,
		QuantityUnitInvID:     bottle.ID,
	}
	if err := db.WithContext(ctx).Create(&lemon).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&butter).Error; err != nil {
		return err
	}

	fresh := models.Condition{Condition: "Fresh"}
	opened := models.Condition{Condition: "Opened"}
	nextWeek := models.ExpiryDate{Date: time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")}
	if err := db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&opened).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&nextWeek).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.IngredientExpiry{IngredientsID: lemon.ID, DateID: nextWeek.ID}).Error; err != nil {
		return err
	}

	adminRole := models.Role{RoleName: "admin"}
	clientRole := models.Role{RoleName: "client"}
	if err := db.WithContext(ctx).Create(&adminRole).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&clientRole).Error; err != nil {
		return err
	}

	maya := models.Profile{Username: "maya", Email: "maya@example.com", FirstName: "Maya", LastName: "Ong"}
	if err := db.WithContext(ctx).Create(&maya).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.UserRole{UserID: maya.ID, RoleID: clientRole.ID}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.DrinkDollar{UserID: maya.ID, Coins: 120}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.DrinkDollarTransaction{
		UserID:           maya.ID,
		TransTitle:       "Welcome bonus",
		TransDescription: "Signup reward",
		Coins:            120,
	}).Error; err != nil {
		return err
	}

	rooftop := models.VenueCategory{CategoryName: "Rooftop Bar", Description: "Open-air venues."}
	if err := db.WithContext(ctx).Create(&rooftop).Error; err != nil {
		return err
	}
	english := models.Language{LanguageName: "English", Status: "enabled"}
	liveMusic := models.RecommendedTag{TagName: "Live Music", Status: "enabled"}
	if err := db.WithContext(ctx).Create(&english).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&liveMusic).Error; err != nil {
		return err
	}

	skyline := models.Venue{
		VenueName:       "Skyline Social",
		Address:         "18 Marina View",
		OpeningHours:    "17:00-01:00",
		HappyHours:      "17:00-19:00",
		Price:           "$$",
		DrinkMinSpend:   "80",
		Recommended:     models.IDList{liveMusic.ID},
		Language:        models.IDList{english.ID},
		Playability:     "walk-in",
		MinimumTips:     "0",
		VenueCategoryID: rooftop.ID,
	}
	if err := db.WithContext(ctx).Create(&skyline).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.VenueMenu{
		VenueID:       skyline.ID,
		ItemName:      "House Negroni",
		OriginalPrice: "22",
	}).Error; err != nil {
		return err
	}

	booking := models.Booking{
		VenueID:           skyline.ID,
		UserID:            maya.ID,
		PreferredDate:     time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02"),
		Pax:               "4",
		RoomNo:            "R2",
		Manager:           "Dee",
		Notes:             "Window table if possible.",
		BookingUniqueCode: "MOCK0001",
		Status:            "confirmed",
	}
	if err := db.WithContext(ctx).Create(&booking).Error; err != nil {
		return err
	}

	weeknight := models.Tag{Name: "Weeknight"}
	pan := models.Equipment{Name: "Saucepan"}
	dessert := models.RecipeCategory{Name: "Dessert"}
	if err := db.WithContext(ctx).Create(&weeknight).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&pan).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&dessert).Error; err != nil {
		return err
	}

	curd := models.Recipe{
		Name:        "Lemon Curd",
		Description: "Silky citrus spread.",
		PrepTime:    10,
		CookTime:    15,
		TotalTime:   25,
	}
	if err := db.WithContext(ctx).Create(&curd).Error; err != nil {
		return err
	}
	for _, row := range []any{
		&models.RecipeTag{RecipeID: curd.ID, TagID: weeknight.ID},
		&models.RecipeEquipment{RecipeID: curd.ID, EquipmentID: pan.ID, Quantity: 1},
		&models.RecipeCategoryLink{RecipeID: curd.ID, CategoryID: dessert.ID},
		&models.RecipeIngredient{RecipeID: curd.ID, IngredientID: lemon.ID, Quantity: 3},
		&models.RecipeIngredient{RecipeID: curd.ID, IngredientID: butter.ID, Quantity: 60},
		&models.Step{RecipeID: curd.ID, StepNumber: 1, Description: "Whisk juice, zest, sugar, and eggs."},
		&models.Step{RecipeID: curd.ID, StepNumber: 2, Description: "Cook gently, then fold in butter."},
	} {
		if err := db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
	}

	if err := db.WithContext(ctx).Create(&models.RedeemItem{
		VenueID:  skyline.ID,
		ItemName: "Free Bar Snacks",
		Amount:   40,
	}).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.Banner{
		Title:     "Happy Hour Week",
		Status:    "enabled",
		SortOrder: 1,
	}).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
