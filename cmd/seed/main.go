package main

import (
	"fmt"

	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/logger"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"

	"github.com/shopspring/decimal"
)

type bookSeed struct {
	Title           string
	Description     string
	PublicationYear int
	Quantity        int
	Price           float64
	Authors         [][2]string
	Genres          []string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	authorRepo := repository.NewAuthorRepository(models.DB)
	genreRepo := repository.NewGenreRepository(models.DB)

	books := []bookSeed{
		{
			Title:           "The Go Programming Language",
			Description:     "The authoritative resource for writing clear and idiomatic Go.",
			PublicationYear: 2015,
			Quantity:        12,
			Price:           39.99,
			Authors:         [][2]string{{"Alan", "Donovan"}, {"Brian", "Kernighan"}},
			Genres:          []string{"Programming"},
		},
		{
			Title:           "Designing Data-Intensive Applications",
			Description:     "The big ideas behind reliable, scalable, and maintainable systems.",
			PublicationYear: 2017,
			Quantity:        8,
			Price:           44.50,
			Authors:         [][2]string{{"Martin", "Kleppmann"}},
			Genres:          []string{"Programming", "Databases"},
		},
		{
			Title:           "The Left Hand of Darkness",
			Description:     "A groundbreaking work of science fiction set on the planet Gethen.",
			PublicationYear: 1969,
			Quantity:        5,
			Price:           12.99,
			Authors:         [][2]string{{"Ursula", "Le Guin"}},
			Genres:          []string{"Science Fiction"},
		},
		{
			Title:           "Kindred",
			Description:     "A novel that blends time travel with the history of American slavery.",
			PublicationYear: 1979,
			Quantity:        0,
			Price:           14.99,
			Authors:         [][2]string{{"Octavia", "Butler"}},
			Genres:          []string{"Science Fiction", "Historical Fiction"},
		},
		{
			Title:           "The Name of the Rose",
			Description:     "A murder mystery set in a 14th-century Italian monastery.",
			PublicationYear: 1980,
			Quantity:        3,
			Price:           18.00,
			Authors:         [][2]string{{"Umberto", "Eco"}},
			Genres:          []string{"Mystery", "Historical Fiction"},
		},
		{
			Title:           "Invisible Cities",
			Description:     "Marco Polo describes fantastical cities to the emperor Kublai Khan.",
			PublicationYear: 1972,
			Quantity:        7,
			Price:           11.50,
			Authors:         [][2]string{{"Italo", "Calvino"}},
			Genres:          []string{"Literary Fiction"},
		},
	}

	for _, seed := range books {
		var existing models.Book
		if err := models.DB.Where("title = ?", seed.Title).First(&existing).Error; err == nil {
			stdLog.Printf("Book already exists: %s", seed.Title)
			continue
		}

		book := models.Book{
			Title:           seed.Title,
			Description:     seed.Description,
			PublicationYear: seed.PublicationYear,
			Quantity:        seed.Quantity,
			Price:           models.NewMoneyFromDecimal(decimal.NewFromFloat(seed.Price)),
		}
		for _, name := range seed.Authors {
			author, err := authorRepo.GetOrCreate(name[0], name[1])
			if err != nil {
				stdLog.Printf("Failed to resolve author %s %s: %v", name[0], name[1], err)
				continue
			}
			book.Authors = append(book.Authors, *author)
		}
		for _, name := range seed.Genres {
			genre, err := genreRepo.GetOrCreate(name)
			if err != nil {
				stdLog.Printf("Failed to resolve genre %s: %v", name, err)
				continue
			}
			book.Genres = append(book.Genres, *genre)
		}

		if err := models.DB.Create(&book).Error; err != nil {
			stdLog.Printf("Failed to create book %s: %v", seed.Title, err)
		} else {
			stdLog.Printf("Created book: %s", seed.Title)
		}
	}

	// 演示账号
	if err := models.InitDemoUser("", ""); err != nil {
		stdLog.Printf("Failed to init demo user: %v", err)
	}

	fmt.Println("\nSeed data created:")
	fmt.Printf("- %d books with authors and genres\n", len(books))
	fmt.Println("- demo reader account (empty database only)")
}
