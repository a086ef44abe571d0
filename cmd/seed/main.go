package main

import (
	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/logger"
	"github.com/panaderia-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	seedMenu(stdLog.Printf)
	seedInventory(stdLog.Printf)
	seedStaff(stdLog.Printf)

	stdLog.Printf("seed finished")
}

func money(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

func seedMenu(logf func(format string, args ...interface{})) {
	items := []models.MenuItem{
		{Name: "Sourdough Loaf", Category: constants.MenuCategoryBread, Price: money("6.50"), Available: true, SortOrder: 10},
		{Name: "Baguette", Category: constants.MenuCategoryBread, Price: money("3.25"), Available: true, SortOrder: 11},
		{Name: "Croissant", Category: constants.MenuCategoryPastry, Price: money("3.75"), Available: true, SortOrder: 20},
		{Name: "Guava Pastelito", Category: constants.MenuCategoryPastry, Price: money("2.50"), Available: true, SortOrder: 21},
		{Name: "Tres Leches Cake", Category: constants.MenuCategoryCake, Price: money("38.00"), Available: true, SortOrder: 30, LeadTimeHours: 48},
		{Name: "Custom Celebration Cake", Category: constants.MenuCategoryCake, Price: money("55.00"), Available: true, SortOrder: 31, LeadTimeHours: 72},
		{Name: "Chocolate Chip Cookie", Category: constants.MenuCategoryCookie, Price: money("1.75"), Available: true, SortOrder: 40},
		{Name: "Cafe con Leche", Category: constants.MenuCategoryDrink, Price: money("3.00"), Available: true, SortOrder: 50},
	}

	for _, item := range items {
		var existing models.MenuItem
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			logf("menu item already exists: %s", item.Name)
			continue
		}
		if err := models.DB.Create(&item).Error; err != nil {
			logf("failed to create menu item %s: %v", item.Name, err)
			continue
		}
		logf("created menu item: %s", item.Name)
	}
}

func seedInventory(logf func(format string, args ...interface{})) {
	items := []models.InventoryItem{
		{Name: "Bread Flour", SKU: "FLOUR-BREAD", Unit: constants.InventoryUnitKilogram, Quantity: money("75"), ReorderThreshold: money("20"), CostPerUnit: money("1.10"), Supplier: "Molinos del Sur"},
		{Name: "Butter", SKU: "BUTTER", Unit: constants.InventoryUnitKilogram, Quantity: money("18"), ReorderThreshold: money("5"), CostPerUnit: money("8.40"), Supplier: "Lacteos Rivera"},
		{Name: "Granulated Sugar", SKU: "SUGAR-GRAN", Unit: constants.InventoryUnitKilogram, Quantity: money("40"), ReorderThreshold: money("10"), CostPerUnit: money("0.95")},
		{Name: "Eggs", SKU: "EGGS", Unit: constants.InventoryUnitDozen, Quantity: money("30"), ReorderThreshold: money("8"), CostPerUnit: money("3.60"), Supplier: "Granja Avila"},
		{Name: "Whole Milk", SKU: "MILK-WHOLE", Unit: constants.InventoryUnitLiter, Quantity: money("25"), ReorderThreshold: money("10"), CostPerUnit: money("1.30"), Supplier: "Lacteos Rivera"},
		{Name: "Cake Boxes 12in", SKU: "BOX-CAKE-12", Unit: constants.InventoryUnitPiece, Quantity: money("60"), ReorderThreshold: money("15"), CostPerUnit: money("0.85")},
	}

	for _, item := range items {
		var existing models.InventoryItem
		if err := models.DB.Where("sku = ?", item.SKU).First(&existing).Error; err == nil {
			logf("inventory item already exists: %s", item.SKU)
			continue
		}
		if err := models.DB.Create(&item).Error; err != nil {
			logf("failed to create inventory item %s: %v", item.SKU, err)
			continue
		}
		logf("created inventory item: %s", item.SKU)
	}
}

func seedStaff(logf func(format string, args ...interface{})) {
	accounts := []struct {
		Username    string
		Password    string
		DisplayName string
		Role        string
	}{
		{Username: "owner", Password: "owner-change-me", DisplayName: "Owner", Role: constants.RoleOwner},
		{Username: "baker1", Password: "baker-change-me", DisplayName: "Head Baker", Role: constants.RoleBaker},
		{Username: "driver1", Password: "driver-change-me", DisplayName: "Delivery Driver", Role: constants.RoleDriver},
	}

	for _, account := range accounts {
		var existing models.Staff
		if err := models.DB.Where("username = ?", account.Username).First(&existing).Error; err == nil {
			logf("staff already exists: %s", account.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			logf("failed to hash password for %s: %v", account.Username, err)
			continue
		}
		staff := models.Staff{
			Username:     account.Username,
			PasswordHash: string(hash),
			DisplayName:  account.DisplayName,
			Role:         account.Role,
			Active:       true,
		}
		if err := models.DB.Create(&staff).Error; err != nil {
			logf("failed to create staff %s: %v", account.Username, err)
			continue
		}
		logf("created staff: %s (%s)", account.Username, account.Role)
	}
}
