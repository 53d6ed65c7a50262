// Package main provides a tool to seed the database with sample catalog data.
//
// This creates a couple of users, a genre vocabulary and a handful of books
// with comments and likes, to exercise listing, search and pagination
// during development.
//
// Usage:
//
//	DATA_PATH=~/favouritebooks go run ./cmd/seed
//	DATA_PATH=~/favouritebooks go run ./cmd/seed --books 40
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
	"github.com/favouritebooks/favouritebooks-server/internal/store/sqlite"
)

var bookCount = flag.Int("books", 12, "Number of sample books to create")

var sampleGenres = []string{
	"Fantasy", "Science Fiction", "Mystery", "Romance", "History", "Poetry",
}

var sampleTitles = []string{
	"The Quiet Harbour", "A Winter of Letters", "Orbit of Glass",
	"The Cartographer's Daughter", "Songs from the Lower City",
	"Midnight at the Archive", "The Last Apiary", "Roads Out of Ashford",
	"A Field Guide to Vanishing", "The Clockmaker's Apprentice",
	"Salt and Starlight", "The Unfinished Bridge",
}

var sampleComments = []string{
	"Loved this one, read it in a single sitting.",
	"The middle section drags a bit but the ending lands.",
	"Not my usual genre but I was pleasantly surprised.",
	"Has anyone read the author's earlier work?",
	"Adding this to my list, thanks for the write-up.",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/favouritebooks")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(filepath.Join(dataPath, "favouritebooks.db"), quiet)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	index, err := search.Open(filepath.Join(dataPath, "search.bleve"), quiet)
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	books := service.NewBookService(db, index, quiet)
	genres := service.NewGenreService(db, quiet)
	comments := service.NewCommentService(db, quiet)

	users := seedUsers(ctx, db, dataPath, quiet)
	staff := domain.ActorFor(users[0])

	fmt.Printf("Seeding %d genres\n", len(sampleGenres))
	var genreIDs []string
	for _, name := range sampleGenres {
		g, err := genres.CreateGenre(ctx, staff, service.CreateGenreRequest{Name: name})
		if err != nil {
			log.Fatalf("Failed to create genre %q: %v", name, err)
		}
		genreIDs = append(genreIDs, g.ID)
	}

	fmt.Printf("Seeding %d books\n", *bookCount)
	var slugs []string
	for i := 0; i < *bookCount; i++ {
		author := domain.ActorFor(users[rng.Intn(len(users))])
		title := sampleTitles[i%len(sampleTitles)]
		if i >= len(sampleTitles) {
			title = fmt.Sprintf("%s, Volume %d", title, i/len(sampleTitles)+1)
		}

		book, err := books.CreateBook(ctx, author, service.BookRequest{
			Title:       title,
			Description: fmt.Sprintf("Sample catalog entry for %q.", title),
			GenreIDs:    []string{genreIDs[rng.Intn(len(genreIDs))]},
			Publish:     rng.Intn(4) != 0, // roughly a quarter stay drafts
		})
		if err != nil {
			log.Fatalf("Failed to create book %q: %v", title, err)
		}
		if book.Status == domain.StatusPublished {
			slugs = append(slugs, book.Slug)
		}
	}

	fmt.Println("Seeding comments and likes")
	for _, slug := range slugs {
		for i := 0; i < 1+rng.Intn(3); i++ {
			commenter := domain.ActorFor(users[rng.Intn(len(users))])
			c, err := comments.AddComment(ctx, commenter, slug, service.AddCommentRequest{
				Content: sampleComments[rng.Intn(len(sampleComments))],
			})
			if err != nil {
				log.Fatalf("Failed to comment on %s: %v", slug, err)
			}
			if rng.Intn(2) == 0 {
				liker := domain.ActorFor(users[rng.Intn(len(users))])
				if _, err := comments.ToggleLike(ctx, liker, c.ID); err != nil {
					log.Fatalf("Failed to like comment: %v", err)
				}
			}
		}
	}

	fmt.Printf("Done. %d published books across %d users.\n", len(slugs), len(users))
	fmt.Println("Login with admin/password123 (staff) or reader1/password123.")
}

// seedUsers registers a staff account plus a few readers, reusing accounts
// that already exist so the tool can run against a seeded database.
func seedUsers(ctx context.Context, db *sqlite.Store, dataPath string, logger *slog.Logger) []*domain.User {
	key, err := auth.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatalf("Failed to load session key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	accounts := service.NewAuthService(db, tokens, mailer.NewLog(logger), "http://localhost:8080", time.Hour, logger)

	names := []string{"admin", "reader1", "reader2", "reader3"}
	users := make([]*domain.User, 0, len(names))
	for _, name := range names {
		if existing, err := db.GetUserByUsername(ctx, name); err == nil {
			users = append(users, existing)
			continue
		}
		u, _, err := accounts.Register(ctx, service.RegisterRequest{
			Username: name,
			Email:    name + "@example.com",
			Password: "password123",
		})
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", name, err)
		}
		users = append(users, u)
	}

	if !users[0].IsStaff {
		users[0].IsStaff = true
		if err := db.UpdateUser(ctx, users[0]); err != nil {
			log.Fatalf("Failed to promote %s: %v", users[0].Username, err)
		}
	}

	return users
}
