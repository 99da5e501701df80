// Command seed loads a demo roster and week into a development
// database so the timetable endpoints have data to work with.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hagwon-io/hagwon-api/internal/models"
	"github.com/hagwon-io/hagwon-api/internal/repository"
	"github.com/hagwon-io/hagwon-api/pkg/config"
	"github.com/hagwon-io/hagwon-api/pkg/database"
)

func main() {
	var adminPassword string
	flag.StringVar(&adminPassword, "admin-password", "admin1234", "Password for the seeded admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, role, active, created_at, updated_at)
		 VALUES ('seed-admin', 'admin@hagwon.local', 'Seed Admin', $1, 'admin', TRUE, NOW(), NOW())
		 ON CONFLICT (id) DO NOTHING`, string(hash)); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	students := []struct {
		id, name, school string
		grade            int
	}{
		{"seed-s1", "Kim Minji", "Daehan High", 2},
		{"seed-s2", "Lee Junho", "Daehan High", 2},
		{"seed-s3", "Choi Yuna", "Sejong Middle", 3},
	}
	for _, s := range students {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO students (id, full_name, school, grade, phone, active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, '', TRUE, NOW(), NOW())
			 ON CONFLICT (id) DO NOTHING`, s.id, s.name, s.school, s.grade); err != nil {
			log.Fatalf("failed to seed student %s: %v", s.id, err)
		}
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO classes (id, name, subject, teacher_name, room, max_students, created_at, updated_at)
		 VALUES ('seed-c1', 'Math A', 'Mathematics', 'Park', '201', 8, NOW(), NOW())
		 ON CONFLICT (id) DO NOTHING`); err != nil {
		log.Fatalf("failed to seed class: %v", err)
	}
	for _, s := range students {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO class_rosters (class_id, student_id) VALUES ('seed-c1', $1)
			 ON CONFLICT DO NOTHING`, s.id); err != nil {
			log.Fatalf("failed to seed roster entry: %v", err)
		}
	}

	scheduleRepo := repository.NewScheduleRowRepository(db)
	rows := []models.ScheduleRow{
		{ID: "seed-b1", StudentID: "seed-s1", StudentName: "Kim Minji", DayOfWeek: "MONDAY", StartTime: "16:00", EndTime: "17:30", Kind: models.ScheduleKindClass, Title: "Math A", Room: "201", TeacherName: "Park", GroupID: "seed-c1"},
		{ID: "seed-b2", StudentID: "seed-s2", StudentName: "Lee Junho", DayOfWeek: "MONDAY", StartTime: "16:00", EndTime: "17:30", Kind: models.ScheduleKindClass, Title: "Math A", Room: "201", TeacherName: "Park", GroupID: "seed-c1"},
		{ID: "seed-b3", StudentID: "seed-s3", StudentName: "Choi Yuna", DayOfWeek: "TUESDAY", StartTime: "18:00", EndTime: "19:00", Kind: models.ScheduleKindClinic, Title: "Math Clinic", Room: "105", TeacherName: "Park"},
		{ID: "seed-b4", StudentID: "seed-s1", StudentName: "Kim Minji", DayOfWeek: "WEDNESDAY", StartTime: "19:00", EndTime: "20:30", Kind: models.ScheduleKindPersonal, Title: "Self Study"},
	}
	for i := range rows {
		if err := scheduleRepo.Create(ctx, &rows[i]); err != nil {
			log.Printf("skipping block %s: %v", rows[i].ID, err)
		}
	}

	log.Printf("seeded %d students, 1 class, %d schedule blocks", len(students), len(rows))
}
