package main

import (
	"flag"
	"fmt"
	"log"
	"nutricoach/database"
	"nutricoach/internal/utils"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		// Running from cmd/seed/
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of demo users to create")
	migrate := seedCmd.Bool("migrate", true, "Run migrations before seeding")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		database.ConnectDatabase()
		if *migrate {
			if err := database.MigrateDatabase(); err != nil {
				log.Fatalf("Failed to run database migrations: %v", err)
			}
		}

		log.Printf("Starting demo seeder with %d users", *numUsers)
		if err := utils.SeedDemoUsers(database.DB, *numUsers); err != nil {
			log.Fatalf("Error seeding demo users: %v", err)
		}

	case "clear":
		database.ConnectDatabase()
		deleted, err := utils.ClearDemoUsers(database.DB)
		if err != nil {
			log.Fatalf("Error clearing demo users: %v", err)
		}
		log.Printf("Cleared %d demo users", deleted)

	case "count":
		database.ConnectDatabase()
		count, err := utils.CountDemoUsers(database.DB)
		if err != nil {
			log.Fatalf("Error counting demo users: %v", err)
		}
		log.Printf("Demo users: %d", count)

	case "check":
		database.ConnectDatabase()
		emails, err := utils.FindDuplicateEmails(database.DB)
		if err != nil {
			log.Fatalf("Error checking for duplicate emails: %v", err)
		}
		if len(emails) == 0 {
			log.Println("No duplicate emails found")
			return
		}
		for _, email := range emails {
			log.Printf("Duplicate email: %s", email)
		}
		os.Exit(1)

	default:
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage: seed <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  seed   Create demo users with profiles, BMI history and diet plans")
	fmt.Println("         --users N     number of users (default 100)")
	fmt.Println("         --migrate     run migrations first (default true)")
	fmt.Println("  clear  Delete every demo user and the data they own")
	fmt.Println("  count  Print the number of demo users")
	fmt.Println("  check  Report emails stored more than once")
}
