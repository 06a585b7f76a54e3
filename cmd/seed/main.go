package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/config"
	"github.com/agrolink/agrolink-backend/internal/db"
	"github.com/agrolink/agrolink-backend/internal/model"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedUser struct {
	UID         string
	Name        string
	Phone       string
	Role        model.Role
	State       string
	City        string
	CompanyName string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	var cnt int64
	if err := gdb.Model(&model.User{}).Count(&cnt).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if cnt > 0 && !strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		log.Printf("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		users := []seedUser{
			{UID: "seed-farmer-1", Name: "Harpreet Singh", Phone: "+919810000001", Role: model.RoleFarmer, State: "Punjab", City: "Ludhiana"},
			{UID: "seed-farmer-2", Name: "Gurdeep Kaur", Phone: "+919810000002", Role: model.RoleFarmer, State: "Punjab", City: "Amritsar"},
			{UID: "seed-contractor-1", Name: "Rajesh Agarwal", Phone: "+919810000003", Role: model.RoleContractor, State: "Punjab", City: "Ludhiana", CompanyName: "Agarwal Agro Traders"},
			{UID: "seed-contractor-2", Name: "Sunita Verma", Phone: "+919810000004", Role: model.RoleContractor, State: "Haryana", City: "Karnal", CompanyName: "Verma Grains"},
		}

		farmerProfiles := map[string]uint64{}
		contractorProfiles := map[string]uint64{}
		for _, su := range users {
			u := model.User{
				UID:   su.UID,
				Name:  su.Name,
				Phone: su.Phone,
				Role:  su.Role,
				State: su.State,
				City:  su.City,
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("create user %s: %w", su.UID, err)
			}
			switch su.Role {
			case model.RoleFarmer:
				p := model.FarmerProfile{UserID: u.ID}
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("create farmer profile: %w", err)
				}
				farmerProfiles[su.UID] = p.ID
			case model.RoleContractor:
				p := model.ContractorProfile{UserID: u.ID, CompanyName: su.CompanyName}
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("create contractor profile: %w", err)
				}
				contractorProfiles[su.UID] = p.ID
			}
		}

		listings := []model.SaleListing{
			{FarmerProfileID: farmerProfiles["seed-farmer-1"], CropType: "Wheat", Quantity: 120, Status: model.StatusActive},
			{FarmerProfileID: farmerProfiles["seed-farmer-1"], CropType: "Rice", Quantity: 80, Status: model.StatusActive},
			{FarmerProfileID: farmerProfiles["seed-farmer-2"], CropType: "Maize", Quantity: 60, Status: model.StatusPending},
		}
		for i := range listings {
			if err := tx.Create(&listings[i]).Error; err != nil {
				return fmt.Errorf("create listing: %w", err)
			}
		}

		requests := []model.PurchaseRequest{
			{ContractorProfileID: contractorProfiles["seed-contractor-1"], CropType: "Wheat", Quantity: 100, PricePerUnit: 2000, Status: model.StatusPending},
			{ContractorProfileID: contractorProfiles["seed-contractor-1"], CropType: "Basmati Rice", Quantity: 150, PricePerUnit: 3500, Status: model.StatusPending},
			{ContractorProfileID: contractorProfiles["seed-contractor-2"], CropType: "Mustard", Quantity: 40, PricePerUnit: 5200, Status: model.StatusPending},
		}
		for i := range requests {
			if err := tx.Create(&requests[i]).Error; err != nil {
				return fmt.Errorf("create purchase request: %w", err)
			}
		}

		log.Printf("seeded %d users, %d listings, %d purchase requests", len(users), len(listings), len(requests))
		return nil
	})
}
