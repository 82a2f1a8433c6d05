package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type seedEmployee struct {
	documentNumber string
	firstName      string
	lastName       string
	age            int
	gender         string
	position       string
	email          string
	contactNumber  string
	status         string
	observations   string
}

type seedContract struct {
	startDate     string
	endDate       string
	value         float64
	employeeIndex int
}

// Seeds a local database with a handful of employees, their contracts and
// a dashboard account. Safe to run repeatedly: existing document numbers
// and emails are skipped.
func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=postgres password=123456 dbname=hr_db sslmode=disable"
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	employees := []seedEmployee{
		{"1001001001", "Juan", "Pérez", 32, "Masculino", "Operario de molino", "juan.perez@molino.com", "3001234567", "activo", ""},
		{"2002002002", "María", "Gómez", 28, "Femenino", "Auxiliar de calidad", "maria.gomez@molino.com", "3019876543", "activo", "Llamado de atención en 2024-05 por tardanza"},
		{"3003003003", "Carlos", "Rodríguez", 41, "Masculino", "Supervisor de planta", "carlos.rodriguez@molino.com", "3025556677", "activo", ""},
	}

	ids := make([]string, len(employees))
	names := make([]string, len(employees))
	for i, e := range employees {
		id, err := insertEmployee(db, e)
		if err != nil {
			log.Fatalf("Failed to seed employee %s: %v", e.firstName, err)
		}
		ids[i] = id
		names[i] = e.firstName + " " + e.lastName
		fmt.Printf("Empleado: %s %s (%s)\n", e.firstName, e.lastName, id)
	}

	contracts := []seedContract{
		{"2025-01-01", "2025-12-31", 24000000, 0},
		{"2024-03-01", "2024-12-31", 18000000, 1},
		{"2025-02-01", "2025-08-31", 36000000, 2},
		{"2023-01-01", "2023-12-31", 22000000, 0},
	}

	for _, c := range contracts {
		if err := insertContract(db, c, ids[c.employeeIndex], names[c.employeeIndex]); err != nil {
			log.Fatalf("Failed to seed contract for %s: %v", names[c.employeeIndex], err)
		}
		fmt.Printf("Contrato: %s (%s a %s)\n", names[c.employeeIndex], c.startDate, c.endDate)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "rrhh@molino.com"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "cambiame123"
	}
	if err := insertUser(db, adminEmail, adminPassword); err != nil {
		log.Fatalf("Failed to seed dashboard user: %v", err)
	}
	fmt.Printf("Usuario: %s\n", adminEmail)

	fmt.Println("Seed completado.")
}

func insertEmployee(db *sql.DB, e seedEmployee) (string, error) {
	var existing string
	err := db.QueryRow("SELECT id FROM employees WHERE document_number = $1", e.documentNumber).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	id := uuid.New().String()
	_, err = db.Exec(`
		INSERT INTO employees
			(id, document_number, first_name, last_name, age, gender, position, email, photo_url, contact_number, status, observations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', $9, $10, $11)`,
		id, e.documentNumber, e.firstName, e.lastName, e.age, e.gender, e.position, e.email, e.contactNumber, e.status, e.observations,
	)
	return id, err
}

func insertContract(db *sql.DB, c seedContract, employeeID, employeeName string) error {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM contracts WHERE employee_id = $1 AND start_date = $2",
		employeeID, c.startDate,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = db.Exec(`
		INSERT INTO contracts (id, start_date, end_date, value, employee_id, employee_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), c.startDate, c.endDate, c.value, employeeID, employeeName,
	)
	return err
}

func insertUser(db *sql.DB, email, password string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO users (email, password, role) VALUES ($1, $2, 'admin')",
		email, string(hash),
	)
	return err
}
