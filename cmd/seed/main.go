package main

import (
	"context"
	"flag"
	"log"
	"time"

	"booknotes/internal/book"
	"booknotes/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	reset := flag.Bool("reset", false, "delete every existing book before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if *reset {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE books RESTART IDENTITY"); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}

	svc := book.NewService(book.NewPostgresRepo(pool, cfg.DBTimeout))
	start := time.Now()
	n, err := seed(ctx, svc, sampleBooks)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("Inserted %d books in %v", n, time.Since(start))
}

// seed creates each form through the service so the usual normalization
// (ISBN canonicalization, cover resolution) applies.
func seed(ctx context.Context, svc *book.Service, forms []book.Form) (int, error) {
	for i, f := range forms {
		if _, err := svc.Create(ctx, f); err != nil {
			return i, err
		}
	}
	return len(forms), nil
}

var sampleBooks = []book.Form{
	{Title: "Dune", Author: "Frank Herbert", ISBN: "978-0-441-17271-9", Rating: "9.5", FinishedOn: "2024-03-02", Review: "Still the best world-building in the genre."},
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "0441478123", Rating: "9", FinishedOn: "2024-05-19"},
	{Title: "Project Hail Mary", Author: "Andy Weir", ISBN: "9780593135204", Rating: "8.5", FinishedOn: "2023-11-08", Notes: "Rocky."},
	{Title: "The Pragmatic Programmer", Author: "David Thomas, Andrew Hunt", ISBN: "9780135957059", Rating: "8"},
	{Title: "Piranesi", Author: "Susanna Clarke", ISBN: "9781635575637"},
}
