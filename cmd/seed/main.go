package main

import (
	"fmt"
	"log"
	"time"

	"github.com/plantops/maintgo/internal/config"
	"github.com/plantops/maintgo/internal/database"
	"github.com/plantops/maintgo/internal/models"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func main() {
	fmt.Println("🌱 MIS Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Profile{},
		&models.AssetMaster{},
		&models.AssetQR{},
		&models.BreakdownLog{},
		&models.PMSchedule{},
		&models.SparePart{},
		&models.SpareTxn{},
		&models.UtilityLog{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var assetCount int64
	db.Model(&models.AssetMaster{}).Count(&assetCount)
	if assetCount > 0 {
		fmt.Printf("⚠️  Database already has %d assets. Clear it first? (y/N): ", assetCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		for _, table := range []string{"spare_txn", "breakdown_logs", "pm_schedule", "asset_qr", "utilities_log", "spare_parts_inventory", "assets_master", "profiles"} {
			db.Exec("DELETE FROM " + table)
		}
		fmt.Println("🧹 Cleared existing data")
	}

	installDate := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}

	assets := []models.AssetMaster{
		{AssetCode: "CNC-001", AssetName: "CNC Milling Machine", Location: strPtr("Shop Floor A"), Category: strPtr("Machining"), Manufacturer: strPtr("Haas"), Model: strPtr("VF-2"), SerialNumber: strPtr("HX48211"), InstallDate: installDate("2019-06-14"), Status: models.AssetStatusActive},
		{AssetCode: "CMP-001", AssetName: "Air Compressor", Location: strPtr("Utility Room"), Category: strPtr("Utilities"), Manufacturer: strPtr("Atlas Copco"), Model: strPtr("GA-30"), InstallDate: installDate("2017-03-02"), Status: models.AssetStatusUnderAMC},
		{AssetCode: "PMP-004", AssetName: "Coolant Pump", Location: strPtr("Shop Floor B"), Category: strPtr("Pumps"), Status: models.AssetStatusActive},
		{AssetCode: "GEN-002", AssetName: "Backup Generator", Location: strPtr("Yard"), Category: strPtr("Power"), Manufacturer: strPtr("Cummins"), Status: models.AssetStatusInactive},
	}
	if err := db.Create(&assets).Error; err != nil {
		log.Fatalf("❌ Seeding assets failed: %v", err)
	}
	fmt.Printf("✅ Seeded %d assets\n", len(assets))

	spares := []models.SparePart{
		{PartCode: "BRG-6204", PartName: "Ball Bearing 6204", UOM: "NOS", StockOnHand: 24, MinLevel: 5, ReorderLevel: 10, Location: strPtr("Store Rack 3")},
		{PartCode: "BLT-A42", PartName: "V-Belt A42", UOM: "NOS", StockOnHand: 12, MinLevel: 4, ReorderLevel: 6},
		{PartCode: "OIL-68", PartName: "Hydraulic Oil ISO 68", UOM: "LTR", StockOnHand: 180, MinLevel: 40, ReorderLevel: 60},
	}
	if err := db.Create(&spares).Error; err != nil {
		log.Fatalf("❌ Seeding spares failed: %v", err)
	}
	fmt.Printf("✅ Seeded %d spare parts\n", len(spares))

	dueDate := time.Now().AddDate(0, 0, 7)
	schedules := []models.PMSchedule{
		{AssetID: assets[0].ID, Title: "Monthly spindle lubrication", Frequency: strPtr("MONTHLY"), DueDate: &dueDate, Status: "SCHEDULED", Checklist: datatypes.JSON([]byte(`["Check oil level","Grease spindle","Inspect belts"]`))},
		{AssetID: assets[1].ID, Title: "Quarterly filter change", Frequency: strPtr("QUARTERLY"), DueDate: &dueDate, Status: "DUE"},
	}
	if err := db.Create(&schedules).Error; err != nil {
		log.Fatalf("❌ Seeding PM schedules failed: %v", err)
	}
	fmt.Printf("✅ Seeded %d PM schedules\n", len(schedules))

	profiles := []models.Profile{
		{FullName: "Admin User", Email: "admin@example.com", Password: "admin123", Role: "admin"},
		{FullName: "Shift Engineer", Email: "engineer@example.com", Password: "engineer123", Role: "engineer"},
	}
	if err := db.Create(&profiles).Error; err != nil {
		log.Fatalf("❌ Seeding profiles failed: %v", err)
	}
	fmt.Printf("✅ Seeded %d profiles\n", len(profiles))

	readings := []models.UtilityLog{
		{UtilityType: "POWER", MeterPoint: "MAIN-KWH", Reading: 48213.5, ReadingAt: time.Now().Add(-24 * time.Hour)},
		{UtilityType: "WATER", MeterPoint: "INLET-M3", Reading: 912.0, ReadingAt: time.Now().Add(-24 * time.Hour)},
	}
	if err := db.Create(&readings).Error; err != nil {
		log.Fatalf("❌ Seeding utility logs failed: %v", err)
	}
	fmt.Printf("✅ Seeded %d utility readings\n", len(readings))

	fmt.Println("🎉 Done")
}
