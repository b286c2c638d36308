// Command seed populates the database with demo posts, comments and likes.
package main

import (
	"context"
	"flag"
	"log"

	"snsapi/internal/config"
	"snsapi/internal/database"
	"snsapi/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of distinct usernames to post as")
	numPosts := flag.Int("posts", defaults.Posts, "Number of posts to create")
	maxComments := flag.Int("comments", defaults.MaxCommentsPerPost, "Maximum comments per post")
	maxLikes := flag.Int("likes", defaults.MaxLikesPerPost, "Maximum likes per post")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, *randSeed)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx, seed.Options{
		Users:              *numUsers,
		Posts:              *numPosts,
		MaxCommentsPerPost: *maxComments,
		MaxLikesPerPost:    *maxLikes,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %d posts, %d comments, %d likes", res.Posts, res.Comments, res.Likes)
}
