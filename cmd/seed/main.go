package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/database"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/domain"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/repository"
)

// Seeds the service catalog and a two-week rolling window of slots.
// Weekdays only, hourly from 09:00 to 17:00.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "agendamento.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	serviceRepo := repository.NewServiceRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM slots")
	db.Exec("DELETE FROM services")

	log.Println("Creating services...")
	services := []domain.Service{
		{Name: "Hydraulic repair", Price: 250, DurationMinutes: 60, Active: true},
		{Name: "Electrical maintenance", Price: 300, DurationMinutes: 60, Active: true},
		{Name: "Facade inspection", Price: 450, DurationMinutes: 90, Active: true},
		{Name: "Elevator check", Price: 600, DurationMinutes: 120, Active: true},
		{Name: "Painting and finishing", Price: 350, DurationMinutes: 60, Active: true},
	}
	for i := range services {
		if err := serviceRepo.Create(ctx, &services[i]); err != nil {
			log.Fatal("create service:", err)
		}
	}

	log.Println("Creating slots...")
	hours := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	start := domain.SlotDay(time.Now().UTC().AddDate(0, 0, 1))

	created := 0
	for d := 0; d < 14; d++ {
		day := start.AddDate(0, 0, d)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, svc := range services {
			for _, h := range hours {
				slot := domain.Slot{
					ServiceID: svc.ID,
					Date:      day,
					Time:      h,
					Available: true,
				}
				if err := slotRepo.Create(ctx, &slot); err != nil {
					log.Fatal("create slot:", err)
				}
				created++
			}
		}
	}

	log.Printf("Done: %d services, %d slots", len(services), created)
}
